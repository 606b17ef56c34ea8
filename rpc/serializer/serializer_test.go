package serializer

import (
	"encoding/json"
	"testing"

	"github.com/flatdoc/fdoc/rpc/common"
	"github.com/google/go-cmp/cmp"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testRequests creates a set of requests with different fields filled
func testRequests() []common.Request {
	return []common.Request{
		// Bare request with just a method
		{Method: common.MethodGet},

		// Get single item
		{
			Method: common.MethodGet,
			Type:   "News",
			File:   common.FileRefValue("News", "latest"),
			DataID: json.RawMessage("3"),
		},

		// Get all
		{
			Method: common.MethodGet,
			Type:   "User@Account",
			File:   common.FileRefValue("Account/users"),
			DataID: json.RawMessage(`"ALL"`),
		},

		// Create with both payloads
		{
			Method:         common.MethodPost,
			Type:           "MarketProduct",
			File:           common.FileRefValue("Market", "electronics"),
			DataID:         json.RawMessage(`"auto"`),
			SurfaceContent: `{"name":"Lamp"}`,
			MainContent:    `{"price":19.99,"stock":4}`,
		},

		// Delete single item
		{
			Method: common.MethodDelete,
			Type:   "News",
			File:   common.FileRefValue("News/latest"),
			DataID: json.RawMessage("12"),
		},
	}
}

// testResponses creates a set of responses with different fields filled
func testResponses() []common.Response {
	return []common.Response{
		{Status: common.StatusSuccess, Message: "Data saved successfully."},
		{
			Status:  common.StatusSuccess,
			Message: "OK",
			Data:    json.RawMessage(`{"id":1,"name":"Lamp"}`),
		},
		{Status: common.StatusError, Message: "Target file not found: News/latest.json"},
	}
}

// TestRequestRoundTrip tests that requests survive serialization unchanged
func TestRequestRoundTrip(t *testing.T) {
	requests := testRequests()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, req := range requests {
				data, err := serializer.SerializeRequest(req)
				if err != nil {
					t.Errorf("Failed to serialize request %d: %v", i, err)
					continue
				}

				var result common.Request
				err = serializer.DeserializeRequest(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize request %d: %v", i, err)
					continue
				}

				if diff := cmp.Diff(req, result); diff != "" {
					t.Errorf("Request %d doesn't match after round trip (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}

// TestResponseRoundTrip tests that responses survive serialization unchanged
func TestResponseRoundTrip(t *testing.T) {
	responses := testResponses()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, resp := range responses {
				data, err := serializer.SerializeResponse(resp)
				if err != nil {
					t.Errorf("Failed to serialize response %d: %v", i, err)
					continue
				}

				var result common.Response
				err = serializer.DeserializeResponse(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize response %d: %v", i, err)
					continue
				}

				if diff := cmp.Diff(resp, result); diff != "" {
					t.Errorf("Response %d doesn't match after round trip (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}

// TestJSONRequestWireShape checks that the json serializer produces the
// exact field names the HTTP API documents
func TestJSONRequestWireShape(t *testing.T) {
	serializer := NewJSONSerializer()

	req := common.NewCreateRequest("News", common.FileRefValue("News", "latest"),
		`{"title":"hi"}`, `{"body":"text"}`)

	data, err := serializer.SerializeRequest(*req)
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("Serialized request is not valid json: %v", err)
	}

	for _, field := range []string{"Method", "Type", "file", "Data_ID", "Surface_content", "Main_content"} {
		if _, ok := wire[field]; !ok {
			t.Errorf("Wire request is missing field %q: %s", field, data)
		}
	}
	if wire["Data_ID"] != "auto" {
		t.Errorf("Expected Data_ID \"auto\", got %v", wire["Data_ID"])
	}
}

// TestBinarySerializerSpecific tests edge cases for the binary serializer
func TestBinarySerializerSpecific(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name string
		req  common.Request
	}{
		{
			name: "Empty request",
			req:  common.Request{},
		},
		{
			name: "Method only",
			req:  common.Request{Method: common.MethodDelete},
		},
		{
			name: "Empty payload strings",
			req: common.Request{
				Method:         common.MethodPut,
				Type:           "News",
				File:           common.FileRefValue("News/latest"),
				DataID:         json.RawMessage("1"),
				SurfaceContent: "",
				MainContent:    "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := serializer.SerializeRequest(tc.req)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			var result common.Request
			if err := serializer.DeserializeRequest(data, &result); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			if tc.req.Method != result.Method {
				t.Errorf("Method mismatch: expected '%s', got '%s'", tc.req.Method, result.Method)
			}
			if tc.req.Type != result.Type {
				t.Errorf("Type mismatch: expected '%s', got '%s'", tc.req.Type, result.Type)
			}
			if string(tc.req.File) != string(result.File) {
				t.Errorf("File mismatch: expected '%s', got '%s'", tc.req.File, result.File)
			}
			if string(tc.req.DataID) != string(result.DataID) {
				t.Errorf("DataID mismatch: expected '%s', got '%s'", tc.req.DataID, result.DataID)
			}
			if tc.req.SurfaceContent != result.SurfaceContent {
				t.Errorf("SurfaceContent mismatch: expected '%s', got '%s'",
					tc.req.SurfaceContent, result.SurfaceContent)
			}
			if tc.req.MainContent != result.MainContent {
				t.Errorf("MainContent mismatch: expected '%s', got '%s'",
					tc.req.MainContent, result.MainContent)
			}
		})
	}
}

// TestInvalidBinaryData tests how the binary serializer handles corrupt data
func TestInvalidBinaryData(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name        string
		data        []byte
		expectError bool
	}{
		{
			name:        "Empty data",
			data:        []byte{},
			expectError: true,
		},
		{
			name:        "Marker byte only",
			data:        []byte{0x01},
			expectError: true,
		},
		{
			name:        "Wrong marker",
			data:        []byte{0x02, 0}, // Response marker on the request path
			expectError: true,
		},
		{
			name:        "Valid header only",
			data:        []byte{0x01, 0},
			expectError: false,
		},
		{
			name:        "Truncated field length",
			data:        []byte{0x01, 1, 0, 0},
			expectError: true,
		},
		{
			name:        "Field length exceeds data",
			data:        []byte{0x01, 1, 0, 0, 0, 5, 'G', 'E', 'T'}, // Claims length 5 but only 3 bytes provided
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var req common.Request
			err := serializer.DeserializeRequest(tc.data, &req)

			if tc.expectError && err == nil {
				t.Errorf("Expected error but got none")
			} else if !tc.expectError && err != nil {
				t.Errorf("Did not expect error but got: %v", err)
			}
		})
	}
}
