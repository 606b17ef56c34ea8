package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/lib/docstore/fstore"
	"github.com/flatdoc/fdoc/lib/format"
	"github.com/flatdoc/fdoc/rpc/common"
)

// newTestStore creates a file store on a temp directory with the
// built-in formats provisioned
func newTestStore(t *testing.T) *testEnv {
	t.Helper()

	formatsDir := t.TempDir()
	if err := format.Provision(formatsDir); err != nil {
		t.Fatalf("Failed to provision formats: %v", err)
	}
	registry, err := format.LoadRegistry(formatsDir)
	if err != nil {
		t.Fatalf("Failed to load formats: %v", err)
	}

	return &testEnv{
		adapter: NewDocStoreServerAdapter(),
		store:   fstore.NewFileStore(t.TempDir(), registry),
	}
}

type testEnv struct {
	adapter IRPCServerAdapter
	store   docstore.IDocStore
}

func (env *testEnv) handle(req *common.Request) (int, *common.Response) {
	return env.adapter.Handle(req, env.store)
}

// TestAdapterValidation tests the request validation before any file access
func TestAdapterValidation(t *testing.T) {
	env := newTestStore(t)

	testCases := []struct {
		name        string
		req         common.Request
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "Missing method",
			req:         common.Request{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid 'Method' field in JSON request.",
		},
		{
			name:        "Unknown method",
			req:         common.Request{Method: "PATCH"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Unknown 'Method' specified in JSON request: PATCH",
		},
		{
			name: "POST without auto",
			req: common.Request{
				Method: common.MethodPost, Type: "News",
				File:           common.FileRefValue("News/latest"),
				DataID:         json.RawMessage("5"),
				SurfaceContent: `{}`, MainContent: `{}`,
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid 'Data_ID' for POST. Expected 'auto'.",
		},
		{
			name: "POST missing payload",
			req: common.Request{
				Method: common.MethodPost, Type: "News",
				File:        common.FileRefValue("News/latest"),
				DataID:      json.RawMessage(`"auto"`),
				MainContent: `{}`,
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing 'Surface_content' or 'Main_content' for POST operation.",
		},
		{
			name: "GET without Data_ID",
			req: common.Request{
				Method: common.MethodGet, Type: "News",
				File: common.FileRefValue("News/latest"),
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Data_ID not specified for GET operation.",
		},
		{
			name: "GET with auto selector",
			req: common.Request{
				Method: common.MethodGet, Type: "News",
				File:   common.FileRefValue("News/latest"),
				DataID: json.RawMessage(`"auto"`),
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid Data_ID format for GET operation. Expected 'ALL' or a number.",
		},
		{
			name: "GET with lowercase all",
			req: common.Request{
				Method: common.MethodGet, Type: "News",
				File:   common.FileRefValue("News/latest"),
				DataID: json.RawMessage(`"all"`),
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid Data_ID format for GET operation. Expected 'ALL' or a number.",
		},
		{
			name: "PUT with ALL selector",
			req: common.Request{
				Method: common.MethodPut, Type: "News",
				File:           common.FileRefValue("News/latest"),
				DataID:         json.RawMessage(`"ALL"`),
				SurfaceContent: `{}`, MainContent: `{}`,
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid 'Data_ID' for PUT operation. Expected an integer ID.",
		},
		{
			name: "DELETE without Data_ID",
			req: common.Request{
				Method: common.MethodDelete, Type: "News",
				File: common.FileRefValue("News/latest"),
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Data_ID not specified for DELETE operation. Expected 'ALL' or a number.",
		},
		{
			name: "Unknown Type",
			req: common.Request{
				Method: common.MethodGet, Type: "Recipes",
				File:   common.FileRefValue("Recipes/all"),
				DataID: json.RawMessage(`"ALL"`),
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Unknown or unsupported Type for file operations: Recipes",
		},
		{
			name: "GET on missing file",
			req: common.Request{
				Method: common.MethodGet, Type: "News",
				File:   common.FileRefValue("News/latest"),
				DataID: json.RawMessage(`"ALL"`),
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Target file not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := env.handle(&tc.req)

			if status != tc.wantStatus {
				t.Errorf("Status mismatch: expected %d, got %d (%s)", tc.wantStatus, status, resp.Message)
			}
			if resp.Status != common.StatusError {
				t.Errorf("Expected error response, got %q", resp.Status)
			}
			if !strings.Contains(resp.Message, tc.wantMessage) {
				t.Errorf("Message mismatch:\nexpected: %s\ngot:      %s", tc.wantMessage, resp.Message)
			}
		})
	}
}

// TestAdapterLifecycle walks one item through create, read, update and delete
func TestAdapterLifecycle(t *testing.T) {
	env := newTestStore(t)
	file := common.FileRefValue("News", "latest")

	// Create
	status, resp := env.handle(common.NewCreateRequest(
		"News", file, `{"title":"first"}`, `{"body":"hello"}`))
	if status != http.StatusOK || resp.IsError() {
		t.Fatalf("Create failed: %d %s", status, resp.Message)
	}
	if resp.Message != "Data saved successfully." {
		t.Errorf("Unexpected create message: %s", resp.Message)
	}

	var created map[string]any
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("Create returned invalid data: %v", err)
	}
	if created["id"] != float64(1) {
		t.Errorf("Expected allocated id 1, got %v", created["id"])
	}
	if created["title"] != "first" || created["body"] != "hello" {
		t.Errorf("Created item is missing merged fields: %v", created)
	}

	// Get single
	status, resp = env.handle(common.NewGetRequest(
		"News", file, common.Selector{Kind: common.SelectorID, ID: 1}))
	if status != http.StatusOK || resp.IsError() {
		t.Fatalf("Get failed: %d %s", status, resp.Message)
	}
	if resp.Message != "Item retrieved successfully." {
		t.Errorf("Unexpected get message: %s", resp.Message)
	}

	// Update, main content wins over surface content
	status, resp = env.handle(common.NewUpdateRequest(
		"News", file, 1, `{"title":"surface"}`, `{"title":"main"}`))
	if status != http.StatusOK || resp.IsError() {
		t.Fatalf("Update failed: %d %s", status, resp.Message)
	}
	var updated map[string]any
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("Update returned invalid data: %v", err)
	}
	if updated["title"] != "main" {
		t.Errorf("Expected main content to win, got title %v", updated["title"])
	}
	if updated["body"] != "hello" {
		t.Errorf("Expected untouched field to survive, got body %v", updated["body"])
	}
	if updated["id"] != float64(1) {
		t.Errorf("Expected id preserved, got %v", updated["id"])
	}

	// Get ALL returns the native root shape
	status, resp = env.handle(common.NewGetRequest(
		"News", file, common.Selector{Kind: common.SelectorAll}))
	if status != http.StatusOK || resp.IsError() {
		t.Fatalf("Get all failed: %d %s", status, resp.Message)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &doc); err != nil {
		t.Fatalf("Get all returned invalid data: %v", err)
	}
	if _, ok := doc["articles"]; !ok {
		t.Errorf("Expected object root with 'articles' key, got %s", resp.Data)
	}

	// Delete single
	status, resp = env.handle(common.NewDeleteRequest(
		"News", file, common.Selector{Kind: common.SelectorID, ID: 1}))
	if status != http.StatusOK || resp.IsError() {
		t.Fatalf("Delete failed: %d %s", status, resp.Message)
	}
	if resp.Message != "Item with ID 1 deleted from News" {
		t.Errorf("Unexpected delete message: %s", resp.Message)
	}

	// The item is gone
	status, resp = env.handle(common.NewGetRequest(
		"News", file, common.Selector{Kind: common.SelectorID, ID: 1}))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d (%s)", status, resp.Message)
	}

	// Delete ALL keeps the file and reports the Type
	status, resp = env.handle(common.NewDeleteRequest(
		"News", file, common.Selector{Kind: common.SelectorAll}))
	if status != http.StatusOK || resp.IsError() {
		t.Fatalf("Delete all failed: %d %s", status, resp.Message)
	}
	if resp.Message != "All items deleted from News" {
		t.Errorf("Unexpected delete all message: %s", resp.Message)
	}
}

// TestAdapterIDAllocation tests that ids keep incrementing from the maximum
func TestAdapterIDAllocation(t *testing.T) {
	env := newTestStore(t)
	file := common.FileRefValue("Market/electronics")

	for want := 1; want <= 3; want++ {
		status, resp := env.handle(common.NewCreateRequest(
			"MarketProduct", file, `{"name":"item"}`, `{"price":1}`))
		if status != http.StatusOK {
			t.Fatalf("Create %d failed: %d %s", want, status, resp.Message)
		}

		var item map[string]any
		if err := json.Unmarshal(resp.Data, &item); err != nil {
			t.Fatalf("Invalid data: %v", err)
		}
		if item["id"] != float64(want) {
			t.Errorf("Expected id %d, got %v", want, item["id"])
		}
	}
}

// TestAdapterNilStore tests the nil store guard
func TestAdapterNilStore(t *testing.T) {
	adapter := NewDocStoreServerAdapter()

	status, resp := adapter.Handle(&common.Request{Method: common.MethodGet}, nil)
	if status != http.StatusInternalServerError {
		t.Errorf("Expected 500 for nil store, got %d", status)
	}
	if !resp.IsError() {
		t.Errorf("Expected error response for nil store")
	}
}
