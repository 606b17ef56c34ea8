package fstore

import (
	"testing"

	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/lib/docstore/storetest"
	"github.com/flatdoc/fdoc/lib/format"
	"github.com/stretchr/testify/require"
)

func TestConformance(t *testing.T) {
	storetest.RunDocStoreTests(t, "FileStore", func(t *testing.T) docstore.IDocStore {
		formatsDir := t.TempDir()
		require.NoError(t, format.Provision(formatsDir))

		registry, err := format.LoadRegistry(formatsDir)
		require.NoError(t, err)

		return NewFileStore(t.TempDir(), registry)
	})
}

func Benchmark(b *testing.B) {
	storetest.RunDocStoreBenchmarks(b, "FileStore", func(b *testing.B) docstore.IDocStore {
		formatsDir := b.TempDir()
		if err := format.Provision(formatsDir); err != nil {
			b.Fatal(err)
		}

		registry, err := format.LoadRegistry(formatsDir)
		if err != nil {
			b.Fatal(err)
		}

		return NewFileStore(b.TempDir(), registry)
	})
}
