package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/flatdoc/fdoc/rpc/common"
	"github.com/flatdoc/fdoc/rpc/transport"
)

// defaultAllowOrigin is the browser origin allowed when none is configured
const defaultAllowOrigin = "http://localhost:3000"

func NewHttpServerTransport() transport.IRPCServerTransport {
	return &httpServerTransport{}
}

type httpServerTransport struct {
	handler transport.ServerHandleFunc
	config  common.ServerConfig
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *httpServerTransport) Listen(config common.ServerConfig) error {
	t.config = config

	// Create a new HTTP server
	mux := http.NewServeMux()

	// Register handlers, the whole API lives behind a single POST route
	if t.config.LogLevel == "debug" {
		mux.HandleFunc("POST /{$}", loggerMiddleware(t.handleRequest))
	} else {
		mux.HandleFunc("POST /{$}", t.handleRequest)
	}
	mux.HandleFunc("OPTIONS /{$}", t.handlePreflight)

	slog.Info("starting server", "transport", "http", "endpoint", t.config.Transport.Endpoint)

	// Set up the server with the address and handler
	return http.ListenAndServe(t.config.Transport.Endpoint, mux)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// allowOrigin returns the configured CORS origin or the default
func (t *httpServerTransport) allowOrigin() string {
	if t.config.CORSAllowOrigin != "" {
		return t.config.CORSAllowOrigin
	}
	return defaultAllowOrigin
}

// writeCORSHeaders adds the CORS headers to every response, browser
// clients are the primary consumers of the http transport
func (t *httpServerTransport) writeCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", t.allowOrigin())
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// handlePreflight answers CORS preflight requests
func (t *httpServerTransport) handlePreflight(w http.ResponseWriter, r *http.Request) {
	t.writeCORSHeaders(w)
	w.WriteHeader(http.StatusOK)
}

// handleRequest handles incoming HTTP requests and writes the response to the writer
func (t *httpServerTransport) handleRequest(w http.ResponseWriter, r *http.Request) {
	t.writeCORSHeaders(w)

	// Read request body
	body, err := io.ReadAll(r.Body)
	defer r.Body.Close()

	// Check if body could be read
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}

	// Call the handler, its status code is the HTTP status code
	status, resp := t.handler(body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err = w.Write(resp); err != nil {
		slog.Error("failed to write response", "err", err)
	}
}

// --------------------------------------------------------------------------
// Middleware (logging)
// --------------------------------------------------------------------------

// responseWriter is a custom ResponseWriter that captures the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create custom response writer to capture status code
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Process request
		next.ServeHTTP(rw, r)

		// Log the request
		slog.Debug("http request",
			"method", r.Method, "path", r.URL.Path,
			"status", rw.statusCode, "took", time.Since(start))
	}
}
