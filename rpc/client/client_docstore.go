package client

import (
	"encoding/json"

	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/rpc/common"
	"github.com/flatdoc/fdoc/rpc/serializer"
	"github.com/flatdoc/fdoc/rpc/transport"
)

// IRemoteDocStore is a docstore.IDocStore backed by a remote server.
// Close releases the underlying transport connections
type IRemoteDocStore interface {
	docstore.IDocStore
	Close() error
}

// NewRPCDocStore creates a new RPC document store client
// The function takes a config, a transport and a serializer as parameters
func NewRPCDocStore(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (IRemoteDocStore, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	s := rpcDocStore{
		rpcClientAdapter{
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}

	return &s, nil
}

type rpcDocStore struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the docstore package in interface.go)
// --------------------------------------------------------------------------

func (i *rpcDocStore) Create(typeName, fileRef, surfaceContent, mainContent string) (json.RawMessage, error) {
	req := common.NewCreateRequest(typeName, common.FileRefValue(fileRef), surfaceContent, mainContent)
	resp, err := invokeRPCRequest(req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (i *rpcDocStore) Get(typeName, fileRef string, id int64) (json.RawMessage, error) {
	req := common.NewGetRequest(typeName, common.FileRefValue(fileRef),
		common.Selector{Kind: common.SelectorID, ID: id})
	resp, err := invokeRPCRequest(req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (i *rpcDocStore) GetAll(typeName, fileRef string) (json.RawMessage, error) {
	req := common.NewGetRequest(typeName, common.FileRefValue(fileRef),
		common.Selector{Kind: common.SelectorAll})
	resp, err := invokeRPCRequest(req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (i *rpcDocStore) Update(typeName, fileRef string, id int64, surfaceContent, mainContent string) (json.RawMessage, error) {
	req := common.NewUpdateRequest(typeName, common.FileRefValue(fileRef), id, surfaceContent, mainContent)
	resp, err := invokeRPCRequest(req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (i *rpcDocStore) Delete(typeName, fileRef string, id int64) error {
	req := common.NewDeleteRequest(typeName, common.FileRefValue(fileRef),
		common.Selector{Kind: common.SelectorID, ID: id})
	_, err := invokeRPCRequest(req, i.transport, i.serializer)
	return err
}

func (i *rpcDocStore) DeleteAll(typeName, fileRef string) error {
	req := common.NewDeleteRequest(typeName, common.FileRefValue(fileRef),
		common.Selector{Kind: common.SelectorAll})
	_, err := invokeRPCRequest(req, i.transport, i.serializer)
	return err
}

func (i *rpcDocStore) Close() error {
	return i.transport.Close()
}
