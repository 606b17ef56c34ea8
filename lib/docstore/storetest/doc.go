// Package storetest provides a standardised conformance suite and
// benchmarks for implementations of the docstore.IDocStore interface.
//
// The suite encodes the behavioural contract of the store: server-side
// id allocation, merge precedence of the two content payloads, the
// immutability of item identity and the error codes for missing targets
// and malformed payloads. Running it against both the file-backed store
// and the remote client guarantees that an operation behaves the same
// no matter which side of the wire it runs on.
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func(t *testing.T) docstore.IDocStore {
//		return NewMyStore(t.TempDir())
//	}
//
//	// Running the standard test suite
//	storetest.RunDocStoreTests(t, "MyStore", factory)
//
//	// Running performance benchmarks
//	storetest.RunDocStoreBenchmarks(b, "MyStore", benchFactory)
package storetest
