// Package serializer provides the pluggable request/response codecs
// used between the RPC transports and the document server.
//
// Three implementations are available:
//
//   - JSON: the canonical wire format. A json-serialized request is
//     exactly the operation document the HTTP transport accepts, so any
//     HTTP client can speak it directly.
//   - GOB: Go's native binary encoding, for Go-to-Go deployments on the
//     framed transports.
//   - Binary: a compact custom format with a flags byte marking which
//     fields are present, trading readability for allocation-free
//     decoding of small messages.
//
// All implementations are stateless and safe for concurrent use.
package serializer
