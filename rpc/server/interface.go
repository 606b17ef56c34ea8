package server

import (
	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/rpc/common"
)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for handling requests and responses
type IRPCServerAdapter interface {
	// Handle handles a request and returns a response
	// It takes a Request and a document store as parameters.
	// It returns the HTTP-style status code of the operation and the
	// response document. Errors are reported inside the response, the
	// status code classifies them for the transport
	Handle(req *common.Request, store docstore.IDocStore) (status int, resp *common.Response)
}
