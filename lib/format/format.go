package format

import "fmt"

// Descriptor declares the on-disk root shape of one document Type.
// Either the file root is a bare JSON array, or it is an object wrapping
// an array at the field named by ArrayKey.
type Descriptor struct {
	// RootIsArray is true if the file root is a bare array
	RootIsArray bool `json:"root_is_array"`
	// ArrayKey names the field holding the array. Must be non-empty
	// if RootIsArray is false, and is ignored otherwise.
	ArrayKey string `json:"array_key,omitempty"`
}

// Validate checks the descriptor invariant: an object-rooted format
// must name the field holding its array.
func (d Descriptor) Validate() error {
	if !d.RootIsArray && d.ArrayKey == "" {
		return fmt.Errorf("format: 'array_key' must be set when 'root_is_array' is false")
	}
	return nil
}

// EmptyRoot returns the minimal empty document mandated by the format:
// an empty array, or an object containing an empty array at ArrayKey.
func (d Descriptor) EmptyRoot() any {
	if d.RootIsArray {
		return []any{}
	}
	return map[string]any{d.ArrayKey: []any{}}
}
