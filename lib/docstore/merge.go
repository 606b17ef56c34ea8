package docstore

// Object is one flat JSON object as decoded by encoding/json.
type Object = map[string]any

// Merge combines two flat JSON objects into a new one: every field of a,
// then every field of b, with b winning on colliding keys. Values are
// replaced whole, there is no recursive merge.
func Merge(a, b Object) Object {
	merged := make(Object, len(a)+len(b))
	for key, value := range a {
		merged[key] = value
	}
	for key, value := range b {
		merged[key] = value
	}
	return merged
}
