// Package common holds the types shared between the RPC server and
// client: the wire Request/Response documents with their polymorphic
// field handling (file references, selectors), the server and client
// configuration structs, and process-wide logging setup.
package common
