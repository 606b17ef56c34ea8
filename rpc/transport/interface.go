package transport

import (
	"github.com/flatdoc/fdoc/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests.
// This function is called by a server transport layer when a request is
// received. It takes the serialized request and returns the HTTP-style
// status code of the operation along with the serialized response. The
// framed transports carry the status in the frame header, the http
// transport uses it as the actual response status code.
type ServerHandleFunc func(req []byte) (status int, resp []byte)

// IRPCServerTransport is the interface for the RPC transport layer
// It must accept a ServerConfig as a parameter
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request is received
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and listens for incoming requests
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the status code and
	// response. A non-2xx status is not an error at this level, the
	// response body still carries a result document
	Send(req []byte) (status int, resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
