// Package cmd implements the command-line interface for the fdoc document
// store. It provides a hierarchical command structure with operations for
// running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - serve: Commands for starting and configuring the fdoc server
//   - doc: Commands for document operations (create, get, update, delete)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See fdoc -help for a list of all commands.
package cmd
