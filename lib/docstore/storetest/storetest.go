package storetest

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/flatdoc/fdoc/lib/docstore"
)

// StoreFactory creates a fresh, empty store for one subtest. The store
// must have the default provisioned Types registered, in particular
// "News" with its items under the "articles" field.
type StoreFactory func(t *testing.T) docstore.IDocStore

// RunDocStoreTests runs the conformance suite for an IDocStore
// implementation. It is shared between the file-backed store and the
// remote client so both sides of the wire behave identically.
func RunDocStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("CreateAndGet", func(t *testing.T) {
			testCreateAndGet(t, factory(t))
		})

		t.Run("SequentialIDs", func(t *testing.T) {
			testSequentialIDs(t, factory(t))
		})

		t.Run("MergePrecedence", func(t *testing.T) {
			testMergePrecedence(t, factory(t))
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, factory(t))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory(t))
		})

		t.Run("DeleteAll", func(t *testing.T) {
			testDeleteAll(t, factory(t))
		})

		t.Run("NotFound", func(t *testing.T) {
			testNotFound(t, factory(t))
		})

		t.Run("ClientErrors", func(t *testing.T) {
			testClientErrors(t, factory(t))
		})

		t.Run("ParallelReads", func(t *testing.T) {
			testParallelReads(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func asObject(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("result is not a JSON object: %v", err)
	}
	return obj
}

func itemID(t *testing.T, raw json.RawMessage) float64 {
	t.Helper()
	id, ok := asObject(t, raw)["id"].(float64)
	if !ok {
		t.Fatalf("result carries no numeric id: %s", raw)
	}
	return id
}

func expectCode(t *testing.T, err error, want docstore.RetCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v, got nil", want)
	}
	if got := docstore.CodeOf(err); got != want {
		t.Errorf("expected error code %v, got %v (%v)", want, got, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testCreateAndGet(t *testing.T, store docstore.IDocStore) {
	created, err := store.Create("News", "News/latest", `{"title":"hello"}`, `{"body":"world"}`)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	item := asObject(t, created)
	if item["title"] != "hello" || item["body"] != "world" {
		t.Errorf("created item misses payload fields: %s", created)
	}
	if item["id"] != float64(1) {
		t.Errorf("expected first id 1, got %v", item["id"])
	}

	fetched, err := store.Get("News", "News/latest", 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if asObject(t, fetched)["title"] != "hello" {
		t.Errorf("fetched item does not match created item: %s", fetched)
	}

	all, err := store.GetAll("News", "News/latest")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	var root struct {
		Articles []any `json:"articles"`
	}
	if err := json.Unmarshal(all, &root); err != nil {
		t.Fatalf("GetAll result is not the native root: %v", err)
	}
	if len(root.Articles) != 1 {
		t.Errorf("expected 1 item in root, got %d", len(root.Articles))
	}
}

func testSequentialIDs(t *testing.T, store docstore.IDocStore) {
	for want := 1; want <= 5; want++ {
		created, err := store.Create("News", "News/latest", fmt.Sprintf(`{"n":%d}`, want), `{}`)
		if err != nil {
			t.Fatalf("Create %d failed: %v", want, err)
		}
		if got := itemID(t, created); got != float64(want) {
			t.Errorf("expected id %d, got %v", want, got)
		}
	}

	// Deleting the newest item frees its id for the next create
	if err := store.Delete("News", "News/latest", 5); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	created, err := store.Create("News", "News/latest", `{}`, `{}`)
	if err != nil {
		t.Fatalf("Create after delete failed: %v", err)
	}
	if got := itemID(t, created); got != float64(5) {
		t.Errorf("expected id 5 after deleting the max, got %v", got)
	}
}

func testMergePrecedence(t *testing.T, store docstore.IDocStore) {
	created, err := store.Create("News", "News/latest",
		`{"title":"surface","author":"ada"}`,
		`{"title":"main"}`)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	item := asObject(t, created)
	if item["title"] != "main" {
		t.Errorf("main content must win over surface content, got title %v", item["title"])
	}
	if item["author"] != "ada" {
		t.Errorf("surface-only field must survive, got author %v", item["author"])
	}
}

func testUpdate(t *testing.T, store docstore.IDocStore) {
	if _, err := store.Create("News", "News/latest", `{"title":"orig","views":7}`, `{}`); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update("News", "News/latest", 1, `{"title":"new"}`, `{"id":99}`)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	item := asObject(t, updated)
	if item["title"] != "new" {
		t.Errorf("expected updated title, got %v", item["title"])
	}
	if item["views"] != float64(7) {
		t.Errorf("untouched field must survive the update, got views %v", item["views"])
	}
	if item["id"] != float64(1) {
		t.Errorf("identity is not updatable, got id %v", item["id"])
	}

	if _, err := store.Get("News", "News/latest", 99); err == nil {
		t.Errorf("the smuggled id must not become addressable")
	}
}

func testDelete(t *testing.T, store docstore.IDocStore) {
	for i := 0; i < 3; i++ {
		if _, err := store.Create("News", "News/latest", `{}`, `{}`); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := store.Delete("News", "News/latest", 2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get("News", "News/latest", 2); err == nil {
		t.Errorf("deleted item must not be retrievable")
	}
	for _, id := range []int64{1, 3} {
		if _, err := store.Get("News", "News/latest", id); err != nil {
			t.Errorf("item %d must survive the delete: %v", id, err)
		}
	}

	expectCode(t, store.Delete("News", "News/latest", 2), docstore.RetCNotFound)
}

func testDeleteAll(t *testing.T, store docstore.IDocStore) {
	for i := 0; i < 3; i++ {
		if _, err := store.Create("News", "News/latest", `{}`, `{}`); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := store.DeleteAll("News", "News/latest"); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	// The file survives empty and the allocator starts over
	if _, err := store.GetAll("News", "News/latest"); err != nil {
		t.Errorf("target must stay readable after DeleteAll: %v", err)
	}
	created, err := store.Create("News", "News/latest", `{}`, `{}`)
	if err != nil {
		t.Fatalf("Create after DeleteAll failed: %v", err)
	}
	if got := itemID(t, created); got != float64(1) {
		t.Errorf("expected id 1 after DeleteAll, got %v", got)
	}
}

func testNotFound(t *testing.T, store docstore.IDocStore) {
	_, err := store.Get("News", "News/nothing", 1)
	expectCode(t, err, docstore.RetCNotFound)

	_, err = store.GetAll("News", "News/nothing")
	expectCode(t, err, docstore.RetCNotFound)

	_, err = store.Update("News", "News/nothing", 1, `{}`, `{}`)
	expectCode(t, err, docstore.RetCNotFound)

	expectCode(t, store.Delete("News", "News/nothing", 1), docstore.RetCNotFound)
	expectCode(t, store.DeleteAll("News", "News/nothing"), docstore.RetCNotFound)
}

func testClientErrors(t *testing.T, store docstore.IDocStore) {
	_, err := store.Create("Recipes", "whatever", `{}`, `{}`)
	expectCode(t, err, docstore.RetCClientError)

	_, err = store.Create("News", "News/latest", `{"broken`, `{}`)
	expectCode(t, err, docstore.RetCClientError)

	_, err = store.Create("News", "News/latest", `[1,2,3]`, `{}`)
	expectCode(t, err, docstore.RetCClientError)

	// The rejected payloads must not have created the target
	_, err = store.GetAll("News", "News/latest")
	expectCode(t, err, docstore.RetCNotFound)
}

func testParallelReads(t *testing.T, store docstore.IDocStore) {
	numItems := 10
	for i := 0; i < numItems; i++ {
		if _, err := store.Create("News", "News/latest", fmt.Sprintf(`{"n":%d}`, i), `{}`); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	numReaders := 8
	var wg sync.WaitGroup
	wg.Add(numReaders)

	for w := 0; w < numReaders; w++ {
		go func(reader int) {
			defer wg.Done()

			for i := 0; i < 50; i++ {
				id := int64(i%numItems + 1)
				raw, err := store.Get("News", "News/latest", id)
				if err != nil {
					t.Errorf("reader %d: Get %d failed: %v", reader, id, err)
					return
				}

				// no Fatal here, this does not run on the test goroutine
				var item map[string]any
				if err := json.Unmarshal(raw, &item); err != nil {
					t.Errorf("reader %d: result is not a JSON object: %v", reader, err)
					return
				}
				if item["id"] != float64(id) {
					t.Errorf("reader %d: expected id %d, got %v", reader, id, item["id"])
					return
				}
			}
		}(w)
	}

	wg.Wait()
}
