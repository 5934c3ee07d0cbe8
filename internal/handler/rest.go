package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/codeblock/rest-service/internal/pipeline"
)

// Version is the application version.
const Version = "1.0.0"

// bearerPrefix is the Authorization header scheme for protected endpoints.
const bearerPrefix = "Bearer "

// RESTHandler is the thin HTTP adapter around the pipeline: it decodes the
// request body, extracts the bearer token, and writes the pipeline's
// response to the wire. All decisions live in the pipeline.
type RESTHandler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// NewRESTHandler creates a new RESTHandler instance.
func NewRESTHandler(p *pipeline.Pipeline, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{
		pipeline: p,
		logger:   logger,
	}
}

// RegisterRoutes registers the REST API routes with the router.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/items", h.SaveItem).Methods(http.MethodPost)
	router.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Version: Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// Register handles POST /register requests.
func (h *RESTHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.pipeline.Register(r.Context(), decodeBody(r)))
}

// Login handles POST /login requests.
func (h *RESTHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.pipeline.Login(r.Context(), decodeBody(r)))
}

// SaveItem handles POST /items requests.
func (h *RESTHandler) SaveItem(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.pipeline.SaveItem(r.Context(), bearerToken(r), decodeBody(r)))
}

// ListItems handles GET /items requests.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.pipeline.ListItems(r.Context(), bearerToken(r)))
}

// decodeBody decodes the request body as a JSON object. A missing body or
// one that is not a JSON object yields nil, which the pipeline reports as a
// missing body.
func decodeBody(r *http.Request) map[string]any {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil
	}
	return payload
}

// bearerToken extracts the bearer token from the Authorization header. A
// missing or differently schemed header yields an empty string, which fails
// verification downstream.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, bearerPrefix)
}

// write sends the pipeline response. The original service carried the
// message in the HTTP reason phrase, which net/http cannot set; a JSON body
// is written when present, otherwise the message goes out as a plain text
// body. A 204 keeps its mandatory empty body.
func (h *RESTHandler) write(w http.ResponseWriter, resp pipeline.Response) {
	if resp.Body != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
			h.logger.Error("failed to encode response", zap.Error(err))
		}
		return
	}

	if resp.Status == http.StatusNoContent {
		w.WriteHeader(resp.Status)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(resp.Status)
	if _, err := w.Write([]byte(resp.Message)); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
