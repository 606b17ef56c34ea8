//go:build property
// +build property

package docstore

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genObject produces flat Objects with string keys and scalar values
func genObject() gopter.Gen {
	return gen.MapOf(
		gen.RegexMatch(`^[a-z]{1,8}$`),
		gen.OneGenOf(
			gen.AnyString().Map(func(s string) any { return s }),
			gen.Int64().Map(func(n int64) any { return n }),
			gen.Bool().Map(func(b bool) any { return b }),
		),
	).Map(func(m map[string]any) Object { return m })
}

func TestMergeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("result keys are the union of the inputs", prop.ForAll(
		func(a, b Object) bool {
			merged := Merge(a, b)
			if len(merged) > len(a)+len(b) {
				return false
			}
			for k := range a {
				if _, ok := merged[k]; !ok {
					return false
				}
			}
			for k := range b {
				if _, ok := merged[k]; !ok {
					return false
				}
			}
			return true
		},
		genObject(), genObject(),
	))

	properties.Property("second input wins on every shared key", prop.ForAll(
		func(a, b Object) bool {
			merged := Merge(a, b)
			for k, v := range b {
				if merged[k] != v {
					return false
				}
			}
			return true
		},
		genObject(), genObject(),
	))

	properties.Property("merge with empty is identity", prop.ForAll(
		func(a Object) bool {
			left := Merge(Object{}, a)
			right := Merge(a, Object{})
			if len(left) != len(a) || len(right) != len(a) {
				return false
			}
			for k, v := range a {
				if left[k] != v || right[k] != v {
					return false
				}
			}
			return true
		},
		genObject(),
	))

	properties.TestingRun(t)
}

func TestNextIDProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("allocated id exceeds every existing id", prop.ForAll(
		func(ids []int64) bool {
			items := make([]any, len(ids))
			for i, id := range ids {
				items[i] = Object{"id": json.Number(itoa(id))}
			}

			next := NextID(items)
			if next < 1 {
				return false
			}
			for _, id := range ids {
				if next <= id {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
	))

	properties.Property("allocation is insensitive to unusable items", prop.ForAll(
		func(ids []int64) bool {
			items := make([]any, 0, len(ids)+3)
			for _, id := range ids {
				items = append(items, Object{"id": json.Number(itoa(id))})
			}
			noisy := append(items,
				"not an object",
				Object{"id": "abc"},
				Object{"name": "no id"},
			)
			return NextID(items) == NextID(noisy)
		},
		gen.SliceOf(gen.Int64Range(1, 1000)),
	))

	properties.TestingRun(t)
}

func itoa(n int64) string {
	raw, _ := json.Marshal(n)
	return string(raw)
}
