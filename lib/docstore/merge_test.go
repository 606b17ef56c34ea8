package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Run("second object wins on collisions", func(t *testing.T) {
		merged := Merge(
			Object{"a": 1, "b": "old", "c": true},
			Object{"b": "new", "d": 4},
		)

		assert.Equal(t, Object{"a": 1, "b": "new", "c": true, "d": 4}, merged)
	})

	t.Run("values are replaced whole", func(t *testing.T) {
		// No recursive merge: the nested object from b replaces the one
		// from a entirely
		merged := Merge(
			Object{"meta": Object{"x": 1, "y": 2}},
			Object{"meta": Object{"z": 3}},
		)

		assert.Equal(t, Object{"meta": Object{"z": 3}}, merged)
	})

	t.Run("inputs stay untouched", func(t *testing.T) {
		a := Object{"k": "a"}
		b := Object{"k": "b"}
		merged := Merge(a, b)

		merged["k"] = "changed"
		merged["extra"] = true

		assert.Equal(t, Object{"k": "a"}, a)
		assert.Equal(t, Object{"k": "b"}, b)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Equal(t, Object{}, Merge(Object{}, Object{}))
		assert.Equal(t, Object{"a": 1}, Merge(Object{"a": 1}, Object{}))
		assert.Equal(t, Object{"a": 1}, Merge(Object{}, Object{"a": 1}))
	})
}
