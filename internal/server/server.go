// Package server exposes stored radar items over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/dyluth/radar/internal/layout"
	"github.com/dyluth/radar/internal/pipeline"
	"github.com/dyluth/radar/internal/render"
	"github.com/dyluth/radar/internal/report"
	"github.com/dyluth/radar/internal/source"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/dyluth/radar/pkg/radar"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// ItemStore is the subset of the item store the server reads from.
type ItemStore interface {
	Ping(ctx context.Context) error
	ListItems(ctx context.Context) ([]*itemstore.Item, error)
	GetItem(ctx context.Context, itemID string) (*itemstore.Item, error)
	Namespace() string
}

// Config controls what the server listens on and how radars are drawn.
type Config struct {
	Addr     string
	Title    string
	Geometry layout.Geometry
	Seed     int64 // 0 = fresh layout on every request
}

// Server serves health, item and rendered radar endpoints.
type Server struct {
	store    ItemStore
	cfg      Config
	server   *http.Server
	listener net.Listener
}

// New creates a server. A zero Geometry is replaced by the default.
func New(store ItemStore, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Geometry == (layout.Geometry{}) {
		cfg.Geometry = layout.DefaultGeometry()
	}
	return &Server{store: store, cfg: cfg}
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthCheckHandler)
	mux.HandleFunc("GET /items", s.listItemsHandler)
	mux.HandleFunc("GET /items/{id}", s.getItemHandler)
	mux.HandleFunc("GET /radar.svg", s.radarHandler)
	mux.HandleFunc("GET /radar.json", s.radarHandler)
	return mux
}

// Start binds the listen address and serves in the background. A bind
// failure is returned rather than logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] HTTP server error: %v", err)
		}
	}()

	log.Printf("[INFO] Serving namespace '%s' on %s", s.store.Namespace(), ln.Addr())
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// HealthResponse is the JSON body of /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ErrorResponse is the JSON body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// healthCheckHandler returns 200 when Redis answers, 503 otherwise.
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Redis:  "disconnected",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Redis: "connected"})
}

func (s *Server) listItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to list items: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "item store unavailable"})
		return
	}
	if items == nil {
		items = []*itemstore.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getItemHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		if itemstore.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("item %s not found", id)})
			return
		}
		log.Printf("[ERROR] Failed to get item %s: %v", id, err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "item store unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// radarHandler lays out every stored item and returns SVG or JSON depending
// on the route.
func (s *Server) radarHandler(w http.ResponseWriter, r *http.Request) {
	batch, err := (&source.Store{Client: s.store}).Fetch(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to read items for radar: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: radar.MessageSourceNotFound})
		return
	}

	opts := pipeline.Options{Geometry: s.cfg.Geometry}
	if s.cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(s.cfg.Seed))
	}

	res, err := pipeline.Run(batch.Headers, batch.Rows, opts)
	if err != nil {
		if mde, ok := radar.AsMalformed(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: mde.Message, Kind: string(mde.Kind)})
			return
		}
		log.Printf("[ERROR] Failed to lay out radar: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to lay out radar"})
		return
	}

	title := s.cfg.Title
	if title == "" {
		title = batch.Name
	}

	if r.URL.Path == "/radar.json" {
		writeJSON(w, http.StatusOK, report.NewRadarDocument(res, title))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.SVG(w, res, title); err != nil {
		log.Printf("[ERROR] Failed to write SVG: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] Failed to encode response: %v", err)
	}
}
