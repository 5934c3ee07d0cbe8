//go:build functional

// Package functional provides functional tests driving the full HTTP stack.
package functional

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/codeblock/rest-service/internal/config"
	"github.com/codeblock/rest-service/internal/password"
	"github.com/codeblock/rest-service/internal/pipeline"
	"github.com/codeblock/rest-service/internal/server"
	"github.com/codeblock/rest-service/internal/store"
	"github.com/codeblock/rest-service/internal/token"
)

// DefaultRequestTimeout bounds a single test request.
const DefaultRequestTimeout = 5 * time.Second

// TestServer wraps a fully wired server behind an httptest listener.
type TestServer struct {
	BaseURL string
	Store   *store.MemoryStore
}

// NewTestServer creates and starts a test server with a memory store.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := &config.Config{
		ServerPort:      8888,
		LogLevel:        "error",
		ShutdownTimeout: 5 * time.Second,
		MetricsEnabled:  false,
		StoreBackend:    "memory",
		JWTSecret:       "functional-test-secret",
		JWTTTL:          time.Hour,
	}

	tokens, err := token.NewJWTManager([]byte(cfg.JWTSecret), cfg.JWTTTL)
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}

	mem := store.NewMemoryStore(password.Plain{})
	p := pipeline.New(mem, mem, tokens, tokens, zap.NewNop())
	srv := server.New(cfg, zap.NewNop(), p)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &TestServer{
		BaseURL: ts.URL,
		Store:   mem,
	}
}

// Response captures the pieces of an HTTP response the tests assert on.
type Response struct {
	StatusCode int
	Body       string
}

// Do performs a request against the test server and drains the response.
func (s *TestServer) Do(t *testing.T, method, path, body, bearer string) *Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	client := &http.Client{Timeout: DefaultRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}
}

// AssertStatusCode fails the test if the response status differs.
func AssertStatusCode(t *testing.T, resp *Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Errorf("Expected status %d, got %d (body: %q)", want, resp.StatusCode, resp.Body)
	}
}

// AssertBody fails the test if the response body differs.
func AssertBody(t *testing.T, resp *Response, want string) {
	t.Helper()
	if resp.Body != want {
		t.Errorf("Expected body %q, got %q", want, resp.Body)
	}
}

// ParseJSON decodes the response body into v.
func ParseJSON(t *testing.T, resp *Response, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(resp.Body), v); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", resp.Body, err)
	}
}
