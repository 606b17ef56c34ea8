// Package unix implements a Unix-domain-socket transport layer for RPC
// communication with the document server. It builds on the base package
// and only contributes the socket-file handling (stale socket removal on
// startup) and buffer tuning. Intended for same-host deployments where
// the TCP stack is unnecessary overhead.
package unix
