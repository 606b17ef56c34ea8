package client

import (
	"fmt"
	"net/http"

	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/rpc/common"
	"github.com/flatdoc/fdoc/rpc/serializer"
	"github.com/flatdoc/fdoc/rpc/transport"
)

// rpcClientAdapter stores all data needed for an RPC client implementation
type rpcClientAdapter struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest is the helper used for all client operations. It
// serializes the request, sends it over the transport and deserializes
// the response. Error responses come back as *docstore.Error so callers
// see the same code classification a local store would produce
func invokeRPCRequest(req *common.Request, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Response, error) {
	// Serialize the request
	reqBytes, err := serializer.SerializeRequest(*req)
	if err != nil {
		return nil, err
	}

	// Send the request
	status, respBytes, err := transport.Send(reqBytes)
	if err != nil {
		return nil, err
	}

	// Deserialize the response
	resp := &common.Response{}
	if err := serializer.DeserializeResponse(respBytes, resp); err != nil {
		return nil, fmt.Errorf("rpc client - failed to deserialize response: %s", err)
	}

	// Check if the response is an error response
	if resp.IsError() || status != http.StatusOK {
		return nil, docstore.NewError(statusToCode(status), resp.Message)
	}

	return resp, nil
}

// statusToCode maps the wire status code back onto a store return code.
// The 500 class collapses to internal, the server does not distinguish
// its 500 causes on the wire
func statusToCode(status int) docstore.RetCode {
	switch status {
	case http.StatusBadRequest:
		return docstore.RetCClientError
	case http.StatusNotFound:
		return docstore.RetCNotFound
	default:
		return docstore.RetCInternalError
	}
}
