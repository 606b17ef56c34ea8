package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/flatdoc/fdoc/rpc/common"
	"github.com/flatdoc/fdoc/rpc/serializer"
	"github.com/flatdoc/fdoc/rpc/transport"
)

// captureTransport records the registered handler so tests can invoke
// it directly without a listener
type captureTransport struct {
	handler transport.ServerHandleFunc
}

func (c *captureTransport) RegisterHandler(f transport.ServerHandleFunc) {
	c.handler = f
}

func (c *captureTransport) Listen(common.ServerConfig) error {
	return nil
}

// TestHandlerLogsOperations tests that every handled operation emits one
// info log line carrying method, type, file, status and duration
func TestHandlerLogsOperations(t *testing.T) {
	var logBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	capture := &captureTransport{}
	srv := rpcServer{
		transport:  capture,
		serializer: serializer.NewJSONSerializer(),
		store:      newTestStore(t).store,
		adapter:    NewDocStoreServerAdapter(),
	}
	srv.registerTransportHandler()
	if capture.handler == nil {
		t.Fatal("No handler registered on the transport")
	}

	req := common.NewCreateRequest("News", common.FileRefValue("News", "latest"),
		`{"title":"a"}`, `{"body":"b"}`)
	raw, err := serializer.NewJSONSerializer().SerializeRequest(*req)
	if err != nil {
		t.Fatalf("Failed to serialize request: %v", err)
	}

	status, _ := capture.handler(raw)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}

	logged := logBuf.String()
	for _, want := range []string{
		"handled operation",
		"method=POST",
		"type=News",
		"file=News/latest",
		"status=200",
		"took=",
	} {
		if !strings.Contains(logged, want) {
			t.Errorf("Expected log output to contain %q, got:\n%s", want, logged)
		}
	}

	// A body that fails to deserialize still produces exactly one line
	logBuf.Reset()
	status, _ = capture.handler([]byte("not json"))
	if status != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", status)
	}
	logged = logBuf.String()
	if !strings.Contains(logged, "handled operation") || !strings.Contains(logged, "status=400") {
		t.Errorf("Expected a log line for the rejected request, got:\n%s", logged)
	}
	if got := strings.Count(logged, "handled operation"); got != 1 {
		t.Errorf("Expected exactly one operation line, got %d", got)
	}
}
