// Package tcp implements a TCP-based transport layer for RPC
// communication with the document server. It builds on the base package
// and only contributes the TCP-specific connection setup and socket
// tuning (no-delay, keep-alive, linger, buffer sizes).
package tcp
