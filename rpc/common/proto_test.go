package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRef(t *testing.T) {
	testCases := []struct {
		name string
		file string
		want string
	}{
		{"plain string", `"News/latest"`, "News/latest"},
		{"two element array", `["News", "latest"]`, "News/latest"},
		{"absent", ``, ""},
		{"null", `null`, ""},
		{"one element array", `["News"]`, ""},
		{"three element array", `["a", "b", "c"]`, ""},
		{"array of numbers", `[1, 2]`, ""},
		{"object", `{"path": "x"}`, ""},
		{"number", `42`, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := Request{File: json.RawMessage(tc.file)}
			assert.Equal(t, tc.want, req.FileRef())
		})
	}
}

func TestSelectorClassification(t *testing.T) {
	testCases := []struct {
		name   string
		dataID string
		want   Selector
	}{
		{"absent", ``, Selector{Kind: SelectorNone}},
		{"null", `null`, Selector{Kind: SelectorNone}},
		{"all sentinel", `"ALL"`, Selector{Kind: SelectorAll}},
		{"auto sentinel", `"auto"`, Selector{Kind: SelectorAuto}},
		{"integer", `7`, Selector{Kind: SelectorID, ID: 7}},
		{"large integer", `9007199254740993`, Selector{Kind: SelectorID, ID: 9007199254740993}},
		{"negative integer", `-1`, Selector{Kind: SelectorID, ID: -1}},
		// The sentinels are case-sensitive
		{"lowercase all", `"all"`, Selector{Kind: SelectorInvalid}},
		{"uppercase auto", `"AUTO"`, Selector{Kind: SelectorInvalid}},
		{"numeric string", `"5"`, Selector{Kind: SelectorInvalid}},
		{"fraction", `5.5`, Selector{Kind: SelectorInvalid}},
		{"object", `{"id": 1}`, Selector{Kind: SelectorInvalid}},
		{"boolean", `true`, Selector{Kind: SelectorInvalid}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := Request{DataID: json.RawMessage(tc.dataID)}
			assert.Equal(t, tc.want, req.Selector())
		})
	}
}

func TestSelectorRaw(t *testing.T) {
	testCases := []struct {
		name     string
		selector Selector
		want     string
	}{
		{"all", Selector{Kind: SelectorAll}, `"ALL"`},
		{"auto", Selector{Kind: SelectorAuto}, `"auto"`},
		{"id", Selector{Kind: SelectorID, ID: 42}, `42`},
		{"none", Selector{Kind: SelectorNone}, ``},
		{"invalid", Selector{Kind: SelectorInvalid}, ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(tc.selector.Raw()))
		})
	}

	// Raw must classify back to the selector it was built from
	for _, s := range []Selector{
		{Kind: SelectorAll},
		{Kind: SelectorAuto},
		{Kind: SelectorID, ID: 3},
	} {
		req := Request{DataID: s.Raw()}
		assert.Equal(t, s, req.Selector())
	}
}

func TestFileRefValue(t *testing.T) {
	single := Request{File: FileRefValue("News/latest")}
	assert.Equal(t, "News/latest", single.FileRef())
	assert.JSONEq(t, `"News/latest"`, string(single.File))

	pair := Request{File: FileRefValue("News", "latest")}
	assert.Equal(t, "News/latest", pair.FileRef())
	assert.JSONEq(t, `["News", "latest"]`, string(pair.File))
}

func TestRequestFactories(t *testing.T) {
	create := NewCreateRequest("News", FileRefValue("latest"), `{"a":1}`, `{"b":2}`)
	assert.Equal(t, MethodPost, create.Method)
	assert.Equal(t, SelectorAuto, create.Selector().Kind)
	assert.Equal(t, `{"a":1}`, create.SurfaceContent)

	get := NewGetRequest("News", FileRefValue("latest"), Selector{Kind: SelectorID, ID: 5})
	assert.Equal(t, MethodGet, get.Method)
	assert.Equal(t, Selector{Kind: SelectorID, ID: 5}, get.Selector())

	update := NewUpdateRequest("News", FileRefValue("latest"), 3, `{}`, `{}`)
	assert.Equal(t, MethodPut, update.Method)
	assert.Equal(t, Selector{Kind: SelectorID, ID: 3}, update.Selector())

	del := NewDeleteRequest("News", FileRefValue("latest"), Selector{Kind: SelectorAll})
	assert.Equal(t, MethodDelete, del.Method)
	assert.Equal(t, SelectorAll, del.Selector().Kind)
}

func TestRequestWireFieldNames(t *testing.T) {
	req := NewCreateRequest("News", FileRefValue("latest"), `{"a":1}`, `{"b":2}`)
	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, name := range []string{"Method", "Type", "file", "Data_ID", "Surface_content", "Main_content"} {
		assert.Contains(t, fields, name)
	}
}

func TestResponse(t *testing.T) {
	success := NewSuccessResponse("Data saved successfully.", json.RawMessage(`{"id":1}`))
	assert.False(t, success.IsError())

	failure := NewErrorResponse("Item with Data_ID 9 not found.")
	assert.True(t, failure.IsError())
	assert.Nil(t, failure.Data)

	// Data is omitted from the wire form when absent
	raw, err := json.Marshal(failure)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)
}
