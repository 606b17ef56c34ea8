package storetest

import (
	"fmt"
	"testing"

	"github.com/flatdoc/fdoc/lib/docstore"
)

// BenchFactory creates a fresh, empty store for one benchmark. It
// mirrors StoreFactory for the *testing.B side.
type BenchFactory func(b *testing.B) docstore.IDocStore

// RunDocStoreBenchmarks runs all benchmarks for an IDocStore
// implementation.
func RunDocStoreBenchmarks(b *testing.B, name string, factory BenchFactory) {
	b.Run(name+"/Create", func(b *testing.B) {
		benchmarkCreate(b, factory(b))
	})

	b.Run(name+"/Get", func(b *testing.B) {
		benchmarkGet(b, factory(b))
	})

	b.Run(name+"/GetAll", func(b *testing.B) {
		benchmarkGetAll(b, factory(b))
	})

	b.Run(name+"/Update", func(b *testing.B) {
		benchmarkUpdate(b, factory(b))
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkCreate(b *testing.B, store docstore.IDocStore) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Spread the items over many files, the whole file is rewritten
		// on every create
		file := fmt.Sprintf("bench/file-%d", i%100)
		if _, err := store.Create("News", file, `{"title":"bench"}`, `{"body":"payload"}`); err != nil {
			b.Fatalf("Create failed: %v", err)
		}
	}
}

func benchmarkGet(b *testing.B, store docstore.IDocStore) {
	numItems := 100
	for i := 0; i < numItems; i++ {
		if _, err := store.Create("News", "bench/get", `{"title":"bench"}`, `{}`); err != nil {
			b.Fatalf("Create failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := int64(i%numItems + 1)
		if _, err := store.Get("News", "bench/get", id); err != nil {
			b.Fatalf("Get failed: %v", err)
		}
	}
}

func benchmarkGetAll(b *testing.B, store docstore.IDocStore) {
	for i := 0; i < 100; i++ {
		if _, err := store.Create("News", "bench/all", `{"title":"bench"}`, `{}`); err != nil {
			b.Fatalf("Create failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.GetAll("News", "bench/all"); err != nil {
			b.Fatalf("GetAll failed: %v", err)
		}
	}
}

func benchmarkUpdate(b *testing.B, store docstore.IDocStore) {
	if _, err := store.Create("News", "bench/update", `{"title":"bench"}`, `{}`); err != nil {
		b.Fatalf("Create failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		payload := fmt.Sprintf(`{"revision":%d}`, i)
		if _, err := store.Update("News", "bench/update", 1, payload, `{}`); err != nil {
			b.Fatalf("Update failed: %v", err)
		}
	}
}
