package docstore

import (
	"bytes"
	"encoding/json"

	"github.com/flatdoc/fdoc/lib/format"
)

// --------------------------------------------------------------------------
// Document
// --------------------------------------------------------------------------

// Document is the parsed JSON tree backing one file: a bare item array,
// or an object wrapping the array at the format's array key. A document
// lives for the duration of a single operation; it is read (or
// default-initialized), mutated, persisted and discarded.
type Document struct {
	Format format.Descriptor
	root   any
}

// NewDocument returns an empty document in the minimal shape mandated
// by the format.
func NewDocument(f format.Descriptor) *Document {
	return &Document{Format: f, root: f.EmptyRoot()}
}

// ParseDocument decodes raw into a document for the given format. The
// root shape is not checked here; see ShapeOK and EnsureShape.
// Numbers are kept as json.Number so untouched item fields round-trip
// without losing precision or formatting.
func ParseDocument(raw []byte, f format.Descriptor) (*Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var root any
	if err := decoder.Decode(&root); err != nil {
		return nil, err
	}
	return &Document{Format: f, root: root}, nil
}

// ShapeOK reports whether the document's root matches its format: a bare
// array, or an object holding an array at the array key.
func (d *Document) ShapeOK() bool {
	if d.Format.RootIsArray {
		_, ok := d.root.([]any)
		return ok
	}
	obj, ok := d.root.(Object)
	if !ok {
		return false
	}
	_, ok = obj[d.Format.ArrayKey].([]any)
	return ok
}

// EnsureShape repairs the document so that Items can be resolved: a
// non-array root becomes an empty array, a non-object root becomes an
// empty object, and a missing or non-array member at the array key is
// replaced with an empty array. Only mutating operations may call this;
// read operations report the mismatch instead.
func (d *Document) EnsureShape() {
	if d.Format.RootIsArray {
		if _, ok := d.root.([]any); !ok {
			d.root = []any{}
		}
		return
	}
	obj, ok := d.root.(Object)
	if !ok {
		obj = Object{}
		d.root = obj
	}
	if _, ok := obj[d.Format.ArrayKey].([]any); !ok {
		obj[d.Format.ArrayKey] = []any{}
	}
}

// Items returns the target array. The shape must be valid (ShapeOK, or
// EnsureShape beforehand); otherwise nil is returned.
func (d *Document) Items() []any {
	if d.Format.RootIsArray {
		items, _ := d.root.([]any)
		return items
	}
	obj, ok := d.root.(Object)
	if !ok {
		return nil
	}
	items, _ := obj[d.Format.ArrayKey].([]any)
	return items
}

// SetItems writes the target array back into the document root.
func (d *Document) SetItems(items []any) {
	if d.Format.RootIsArray {
		d.root = items
		return
	}
	if obj, ok := d.root.(Object); ok {
		obj[d.Format.ArrayKey] = items
	}
}

// Encode serializes the whole document.
func (d *Document) Encode() ([]byte, error) {
	return json.Marshal(d.root)
}

// --------------------------------------------------------------------------
// Item helpers
// --------------------------------------------------------------------------

// ItemID extracts the integer id of an item. The boolean return value is
// false for non-object items and for items whose id field is absent or
// not an integer; such items simply do not participate in id lookup or
// allocation.
func ItemID(item any) (int64, bool) {
	obj, ok := item.(Object)
	if !ok {
		return 0, false
	}
	switch v := obj["id"].(type) {
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	case int64:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// FindByID returns the index of the first item with the given id, or -1.
// Ids are expected to be unique within the array, but the scan does not
// enforce that; only the allocator does.
func FindByID(items []any, id int64) int {
	for i, item := range items {
		if itemID, ok := ItemID(item); ok && itemID == id {
			return i
		}
	}
	return -1
}

// NextID allocates the next id for the array: one more than the maximum
// integer id currently present. Items without a usable integer id count
// as id 0, so an empty (or id-less) array starts at 1.
func NextID(items []any) int64 {
	var maxID int64
	for _, item := range items {
		if id, ok := ItemID(item); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
