// Package http implements the HTTP transport layer for the document
// server. It provides concrete implementations of the transport
// interfaces defined in the parent package and is the transport browser
// frontends talk to directly: a json-serialized request POSTed to the
// server root is a complete API call, no SDK required.
//
// The package focuses on:
//   - A single POST route at the server root accepting operation documents
//   - CORS headers and preflight handling for browser clients, with a
//     configurable allowed origin
//   - Real HTTP status codes carrying the operation outcome (200/400/404/500)
//   - Round-robin load balancing across multiple server endpoints on the
//     client side
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport, managing
//     connections to server endpoints and retrying on network errors.
//     Non-2xx responses are returned to the caller, not treated as
//     transport failures.
//
//   - httpServerTransport: Implements IRPCServerTransport, setting up an
//     HTTP server that feeds request bodies to the registered handler and
//     writes the handler's status code as the HTTP response status.
//
// Thread Safety:
//
//	The client transport is thread-safe and can be used concurrently. It
//	uses atomic operations for the round-robin counter to ensure thread
//	safety when selecting server endpoints.
package http
