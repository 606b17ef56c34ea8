package common

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// --------------------------------------------------------------------------
// Request
// --------------------------------------------------------------------------

// Supported values of the Method field (case-sensitive, exact strings).
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// Sentinel selector strings. "ALL" addresses the whole target array on
// GET and DELETE; POST requires the literal "auto" since ids are always
// allocated by the server.
const (
	SentinelAll  = "ALL"
	SentinelAuto = "auto"
)

// Request is the operation document sent from client to server. File
// and DataID stay raw here because their wire shape is polymorphic
// (string or string pair, string sentinel or integer); the accessor
// methods below perform the classification.
type Request struct {
	// Method is one of GET, POST, PUT, DELETE
	Method string `json:"Method"`
	// Type names a registered format
	Type string `json:"Type,omitempty"`
	// File is a string path segment, or a 2-element array of strings
	// joined with "/"
	File json.RawMessage `json:"file,omitempty"`
	// DataID is the selector: "ALL", "auto" or an integer id
	DataID json.RawMessage `json:"Data_ID,omitempty"`
	// SurfaceContent and MainContent each hold a JSON object as a string
	SurfaceContent string `json:"Surface_content,omitempty"`
	MainContent    string `json:"Main_content,omitempty"`
}

// FileRef resolves the polymorphic file field to a single path segment.
// Any shape other than a string or a 2-element string array yields "",
// which the dispatcher treats the same as an absent filename.
func (r *Request) FileRef() string {
	if len(r.File) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(r.File, &single); err == nil {
		return single
	}

	var pair []string
	if err := json.Unmarshal(r.File, &pair); err == nil && len(pair) == 2 {
		return pair[0] + "/" + pair[1]
	}
	return ""
}

// Selector classifies the Data_ID field.
func (r *Request) Selector() Selector {
	if len(r.DataID) == 0 || bytes.Equal(r.DataID, []byte("null")) {
		return Selector{Kind: SelectorNone}
	}

	var s string
	if err := json.Unmarshal(r.DataID, &s); err == nil {
		switch s {
		case SentinelAll:
			return Selector{Kind: SelectorAll}
		case SentinelAuto:
			return Selector{Kind: SelectorAuto}
		default:
			return Selector{Kind: SelectorInvalid}
		}
	}

	var n json.Number
	if err := json.Unmarshal(r.DataID, &n); err == nil {
		if id, err := n.Int64(); err == nil {
			return Selector{Kind: SelectorID, ID: id}
		}
	}
	return Selector{Kind: SelectorInvalid}
}

// --------------------------------------------------------------------------
// Selector
// --------------------------------------------------------------------------

// SelectorKind classifies the Data_ID wire value.
type SelectorKind uint8

const (
	SelectorNone    SelectorKind = iota // Field absent or null
	SelectorAll                         // The string "ALL"
	SelectorAuto                        // The string "auto" (POST only)
	SelectorID                          // An integer id
	SelectorInvalid                     // Anything else (wrong case, fraction, object, ...)
)

// Selector is the classified Data_ID value. ID is only meaningful for
// SelectorID.
type Selector struct {
	Kind SelectorKind
	ID   int64
}

// Raw returns the wire representation of the selector, for building
// requests on the client side.
func (s Selector) Raw() json.RawMessage {
	switch s.Kind {
	case SelectorAll:
		return json.RawMessage(`"` + SentinelAll + `"`)
	case SelectorAuto:
		return json.RawMessage(`"` + SentinelAuto + `"`)
	case SelectorID:
		return json.RawMessage(strconv.FormatInt(s.ID, 10))
	default:
		return nil
	}
}

// --------------------------------------------------------------------------
// Request Factory Functions
// --------------------------------------------------------------------------

// FileRefValue builds the wire value of the file field: one segment is
// sent as a plain string, two segments as the 2-element array form.
func FileRefValue(segments ...string) json.RawMessage {
	var raw []byte
	if len(segments) == 1 {
		raw, _ = json.Marshal(segments[0])
	} else {
		raw, _ = json.Marshal(segments)
	}
	return raw
}

// NewCreateRequest creates a POST request (id allocation is always "auto")
func NewCreateRequest(typeName string, file json.RawMessage, surfaceContent, mainContent string) *Request {
	return &Request{
		Method:         MethodPost,
		Type:           typeName,
		File:           file,
		DataID:         Selector{Kind: SelectorAuto}.Raw(),
		SurfaceContent: surfaceContent,
		MainContent:    mainContent,
	}
}

// NewGetRequest creates a GET request for a single id or the "ALL" sentinel
func NewGetRequest(typeName string, file json.RawMessage, selector Selector) *Request {
	return &Request{
		Method: MethodGet,
		Type:   typeName,
		File:   file,
		DataID: selector.Raw(),
	}
}

// NewUpdateRequest creates a PUT request for a single id
func NewUpdateRequest(typeName string, file json.RawMessage, id int64, surfaceContent, mainContent string) *Request {
	return &Request{
		Method:         MethodPut,
		Type:           typeName,
		File:           file,
		DataID:         Selector{Kind: SelectorID, ID: id}.Raw(),
		SurfaceContent: surfaceContent,
		MainContent:    mainContent,
	}
}

// NewDeleteRequest creates a DELETE request for a single id or the "ALL" sentinel
func NewDeleteRequest(typeName string, file json.RawMessage, selector Selector) *Request {
	return &Request{
		Method: MethodDelete,
		Type:   typeName,
		File:   file,
		DataID: selector.Raw(),
	}
}

// --------------------------------------------------------------------------
// Response
// --------------------------------------------------------------------------

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the result document sent from server to client. Data is
// omitted when the operation yields none (deletes, errors).
type Response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// IsError reports whether the response carries an error status.
func (r *Response) IsError() bool {
	return r.Status != StatusSuccess
}

// NewSuccessResponse creates a success response with optional data
func NewSuccessResponse(message string, data json.RawMessage) *Response {
	return &Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  StatusError,
		Message: message,
	}
}
