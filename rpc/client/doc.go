// Package client implements the RPC client for the document store. It
// provides an implementation of the docstore.IDocStore interface that
// forwards all operations to a remote server via the configured
// transport and serializer.
//
// The package focuses on:
//   - Transparent remote access to document operations
//   - Integration with the transport and serialization layers
//   - Converting wire status codes back into docstore error codes, so
//     remote and local stores fail the same way
//
// Key Components:
//
//   - NewRPCDocStore: Factory function that creates a client implementing
//     IRemoteDocStore (docstore.IDocStore plus Close).
//
// Usage Example:
//
//	config := common.ClientConfig{
//		TimeoutSecond: 5,
//		Transport: common.ClientTransportConfig{
//			Endpoints:  []string{"localhost:3013"},
//			RetryCount: 3,
//		},
//	}
//
//	store, _ := client.NewRPCDocStore(config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//	defer store.Close()
//
//	item, _ := store.Create("News", "News/latest", `{"title":"hi"}`, `{"body":"text"}`)
//	all, _ := store.GetAll("News", "News/latest")
//
// Performance Considerations:
//
//   - For applications that frequently send large documents, increasing
//     ConnectionsPerEndpoint can improve throughput by allowing parallel
//     requests.
//
//   - The choice of serializer affects payload size and encode cost. The
//     binary serializer is the most compact; the json serializer is what
//     browsers and non-Go clients speak.
//
// Thread Safety:
//
//	All client implementations are thread-safe and can be used
//	concurrently from multiple goroutines without additional
//	synchronization.
package client
