// Package api serves the form interface: a single page that collects a
// post's comments and hands back a preview plus the CSV payload.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"comment-collector-go/internal/cache"
	"comment-collector-go/internal/config"
	"comment-collector-go/internal/graph"
)

// CollectFunc runs one collection. Injected in tests.
type CollectFunc func(ctx context.Context, accessToken, apiVersion, postID string) ([]graph.Comment, error)

type Server struct {
	cfg     config.Config
	mux     *http.ServeMux
	cache   cache.Cache
	collect CollectFunc
}

func NewServer(cfg config.Config, collect CollectFunc) *Server {
	if collect == nil {
		collect = collectFromConfig(cfg)
	}
	s := &Server{
		cfg:     cfg,
		mux:     http.NewServeMux(),
		cache:   cache.NewFromConfig(cfg),
		collect: collect,
	}
	s.routes()
	return s
}

func collectFromConfig(cfg config.Config) CollectFunc {
	return func(ctx context.Context, accessToken, apiVersion, postID string) ([]graph.Comment, error) {
		client := graph.NewClient(graph.ClientOptions{
			BaseURL:    cfg.GraphBaseURL,
			TimeoutSec: cfg.HTTPTimeoutSec,
		})
		col := graph.NewCollector(client, graph.CollectorOptions{
			AccessToken: accessToken,
			APIVersion:  apiVersion,
			BaseURL:     cfg.GraphBaseURL,
			PageLimit:   cfg.PageLimit,
		})
		return col.Collect(ctx, postID)
	}
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /{$}", s.handleCollect)
	s.mux.HandleFunc("POST /download", s.handleDownload)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
