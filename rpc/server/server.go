package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/lib/docstore/fstore"
	"github.com/flatdoc/fdoc/lib/format"
	"github.com/flatdoc/fdoc/rpc/common"
	"github.com/flatdoc/fdoc/rpc/serializer"
	"github.com/flatdoc/fdoc/rpc/transport"
)

// bootstrapDirs are the storage subdirectories created on first start so
// the default Types have a place for their files
var bootstrapDirs = []string{"News", "Market", "Store", "Account"}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		adapter:    NewDocStoreServerAdapter(),
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	store      docstore.IDocStore
	adapter    IRPCServerAdapter
}

func (s *rpcServer) registerTransportHandler() {
	requestDuration := metrics.GetOrCreateSummary("fdoc_request_duration_seconds")

	s.transport.RegisterHandler(func(req []byte) (int, []byte) {
		start := time.Now()

		var msg common.Request
		var status int
		var respMsg *common.Response

		// Decode the request
		if err := s.serializer.DeserializeRequest(req, &msg); err != nil {
			status = http.StatusBadRequest
			respMsg = common.NewErrorResponse("Invalid JSON in request body.")
		} else {
			// Let the adapter handle the request
			status, respMsg = s.adapter.Handle(&msg, s.store)
		}

		took := time.Since(start)
		countRequest(msg.Method, status)
		requestDuration.UpdateDuration(start)

		// One line per handled operation, parse failures included (the
		// request fields are empty then)
		slog.Info("handled operation",
			"method", msg.Method,
			"type", msg.Type,
			"file", msg.FileRef(),
			"status", status,
			"took", took,
		)

		// Encode the response
		val, err := s.serializer.SerializeResponse(*respMsg)
		if err != nil {
			slog.Error("failed to serialize response", "err", err)
			val, _ = s.serializer.SerializeResponse(
				*common.NewErrorResponse(fmt.Sprintf("failed to serialize response: %s", err)))
			return http.StatusInternalServerError, val
		}
		return status, val
	})
}

// countRequest updates the per-method and per-status counters
func countRequest(method string, status int) {
	if method == "" {
		method = "NONE"
	}
	metrics.GetOrCreateCounter(
		fmt.Sprintf(`fdoc_requests_total{method=%q,status="%d"}`, method, status)).Inc()
}

func (s *rpcServer) init() error {
	// Init logger
	if err := common.SetupLogging(s.config.LogLevel); err != nil {
		return err
	}

	slog.Info("created document server")
	fmt.Print(s.config.String())

	// Create the storage directory and the subdirectories of the
	// built-in Types
	for _, dir := range bootstrapDirs {
		if err := os.MkdirAll(filepath.Join(s.config.StorageDir, dir), 0o755); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	slog.Info("storage directory ready", "dir", s.config.StorageDir)

	// Write the built-in format descriptors (existing files are kept),
	// then load the full registry
	if err := format.Provision(s.config.FormatsDir); err != nil {
		return fmt.Errorf("failed to provision formats: %w", err)
	}
	registry, err := format.LoadRegistry(s.config.FormatsDir)
	if err != nil {
		return fmt.Errorf("failed to load formats: %w", err)
	}
	slog.Info("formats loaded", "types", registry.Types())

	// Create the document store
	s.store = fstore.NewFileStore(s.config.StorageDir, registry)

	// Start the metrics side listener if configured
	if s.config.MetricsEndpoint != "" {
		go serveMetrics(s.config.MetricsEndpoint)
	}

	// Configure the transport layer
	s.registerTransportHandler()

	return nil
}

// Serve starts the RPC server
// This function will also initialize the server and start the transport layer
func (s *rpcServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// serveMetrics exposes the collected metrics in Prometheus text format
// on a separate listener, away from the document API
func serveMetrics(endpoint string) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	slog.Info("starting metrics server", "endpoint", endpoint)
	if err := http.ListenAndServe(endpoint, mux); err != nil {
		slog.Error("metrics server failed", "err", err)
	}
}
