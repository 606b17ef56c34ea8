package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/rpc/common"
)

func NewDocStoreServerAdapter() IRPCServerAdapter {
	return &docStoreServerAdapterImpl{}
}

type docStoreServerAdapterImpl struct{}

// Handle dispatches the request to the store operation selected by the
// Method field. Validation runs in a fixed order: method, selector
// shape, then everything the store checks itself (Type, filename,
// payloads, file access)
func (adapter *docStoreServerAdapterImpl) Handle(req *common.Request, store docstore.IDocStore) (int, *common.Response) {
	// Check for nil store
	if store == nil {
		return http.StatusInternalServerError, common.NewErrorResponse("handler: store is nil")
	}

	switch req.Method {
	case common.MethodGet:
		return adapter.handleGet(req, store)
	case common.MethodPost:
		return adapter.handlePost(req, store)
	case common.MethodPut:
		return adapter.handlePut(req, store)
	case common.MethodDelete:
		return adapter.handleDelete(req, store)
	case "":
		return http.StatusBadRequest, common.NewErrorResponse(
			"Missing or invalid 'Method' field in JSON request.")
	default:
		return http.StatusBadRequest, common.NewErrorResponse(
			fmt.Sprintf("Unknown 'Method' specified in JSON request: %s", req.Method))
	}
}

// --------------------------------------------------------------------------
// Method Handlers
// --------------------------------------------------------------------------

func (adapter *docStoreServerAdapterImpl) handleGet(req *common.Request, store docstore.IDocStore) (int, *common.Response) {
	switch sel := req.Selector(); sel.Kind {
	case common.SelectorNone:
		return http.StatusBadRequest, common.NewErrorResponse(
			"Data_ID not specified for GET operation.")

	case common.SelectorAll:
		doc, err := store.GetAll(req.Type, req.FileRef())
		if err != nil {
			return errorResponse(err)
		}
		return http.StatusOK, common.NewSuccessResponse("Data retrieved successfully.", doc)

	case common.SelectorID:
		item, err := store.Get(req.Type, req.FileRef(), sel.ID)
		if err != nil {
			return errorResponse(err)
		}
		return http.StatusOK, common.NewSuccessResponse("Item retrieved successfully.", item)

	default:
		return http.StatusBadRequest, common.NewErrorResponse(
			"Invalid Data_ID format for GET operation. Expected 'ALL' or a number.")
	}
}

func (adapter *docStoreServerAdapterImpl) handlePost(req *common.Request, store docstore.IDocStore) (int, *common.Response) {
	// Ids are always allocated by the server, POST must ask for that
	// explicitly
	if req.Selector().Kind != common.SelectorAuto {
		return http.StatusBadRequest, common.NewErrorResponse(
			"Missing or invalid 'Data_ID' for POST. Expected 'auto'.")
	}

	if req.SurfaceContent == "" || req.MainContent == "" {
		return http.StatusBadRequest, common.NewErrorResponse(
			"Missing 'Surface_content' or 'Main_content' for POST operation.")
	}

	item, err := store.Create(req.Type, req.FileRef(), req.SurfaceContent, req.MainContent)
	if err != nil {
		return errorResponse(err)
	}
	return http.StatusOK, common.NewSuccessResponse("Data saved successfully.", item)
}

func (adapter *docStoreServerAdapterImpl) handlePut(req *common.Request, store docstore.IDocStore) (int, *common.Response) {
	sel := req.Selector()
	if sel.Kind != common.SelectorID {
		return http.StatusBadRequest, common.NewErrorResponse(
			"Missing or invalid 'Data_ID' for PUT operation. Expected an integer ID.")
	}

	if req.SurfaceContent == "" || req.MainContent == "" {
		return http.StatusBadRequest, common.NewErrorResponse(
			"Missing 'Surface_content' or 'Main_content' for PUT operation (contains update data).")
	}

	item, err := store.Update(req.Type, req.FileRef(), sel.ID, req.SurfaceContent, req.MainContent)
	if err != nil {
		return errorResponse(err)
	}
	return http.StatusOK, common.NewSuccessResponse("Item updated successfully.", item)
}

func (adapter *docStoreServerAdapterImpl) handleDelete(req *common.Request, store docstore.IDocStore) (int, *common.Response) {
	switch sel := req.Selector(); sel.Kind {
	case common.SelectorNone:
		return http.StatusBadRequest, common.NewErrorResponse(
			"Data_ID not specified for DELETE operation. Expected 'ALL' or a number.")

	case common.SelectorAll:
		if err := store.DeleteAll(req.Type, req.FileRef()); err != nil {
			return errorResponse(err)
		}
		return http.StatusOK, common.NewSuccessResponse(
			fmt.Sprintf("All items deleted from %s", req.Type), nil)

	case common.SelectorID:
		if err := store.Delete(req.Type, req.FileRef(), sel.ID); err != nil {
			return errorResponse(err)
		}
		return http.StatusOK, common.NewSuccessResponse(
			fmt.Sprintf("Item with ID %d deleted from %s", sel.ID, req.Type), nil)

	default:
		return http.StatusBadRequest, common.NewErrorResponse(
			"Invalid Data_ID format for DELETE operation. Expected 'ALL' or a number.")
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// errorResponse converts a store error into a status code and response
// document. The message on the wire is the bare store message, the
// RetCode wrapper stays server-side
func errorResponse(err error) (int, *common.Response) {
	code := docstore.CodeOf(err)

	msg := err.Error()
	var e *docstore.Error
	if errors.As(err, &e) {
		msg = e.Msg
	}

	return code.HTTPStatus(), common.NewErrorResponse(msg)
}
