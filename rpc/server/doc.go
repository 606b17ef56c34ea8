// Package server implements the request/response boundary of the
// document store. It wires a transport, a serializer and the file-backed
// store together: the transport delivers serialized operation documents,
// the adapter validates and dispatches them, and the store performs the
// actual file work.
//
// The package focuses on:
//   - Transport- and serializer-agnostic request handling
//   - A fixed validation order (method, selector, then store-side checks)
//     so equivalent bad requests always produce the same error
//   - Mapping store return codes onto HTTP-style status codes
//     (200/400/404/500) that the transports carry to the client
//   - Startup provisioning: storage directories and built-in format
//     descriptors are created on first run
//   - Operation counters and latency summaries, optionally exposed on a
//     separate metrics listener
//
// Key Components:
//
//   - IRPCServerAdapter: Interface for request dispatchers, allowing the
//     handling logic to be tested without a transport.
//
//   - docStoreServerAdapterImpl: The dispatcher for document operations
//     (GET/POST/PUT/DELETE with the ALL/auto selector sentinels).
//
//   - rpcServer: Ties config, transport, serializer and store together
//     and runs the serve loop.
package server
