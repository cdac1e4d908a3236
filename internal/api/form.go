package api

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"comment-collector-go/internal/export"
	"comment-collector-go/internal/graph"
	"comment-collector-go/internal/logger"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const defaultCSVName = "comments.csv"

type formState struct {
	PostURL     string
	AccessToken string
	PostID      string
	APIVersion  string
}

type indexView struct {
	Error        string
	Collected    bool
	Preview      []graph.Comment
	CSVContent   string
	CSVName      string
	CommentCount int
	Form         formState
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, indexView{
		CSVName: defaultCSVName,
		Form:    formState{APIVersion: s.cfg.APIVersion},
	})
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, indexView{Error: "invalid form submission", CSVName: defaultCSVName})
		return
	}
	form := formState{
		PostURL:     strings.TrimSpace(r.PostFormValue("post_url")),
		AccessToken: strings.TrimSpace(r.PostFormValue("access_token")),
		PostID:      strings.TrimSpace(r.PostFormValue("post_id")),
		APIVersion:  strings.TrimSpace(r.PostFormValue("api_version")),
	}
	if form.APIVersion == "" {
		form.APIVersion = s.cfg.APIVersion
	}
	csvName := strings.TrimSpace(r.PostFormValue("csv_name"))
	if csvName == "" {
		csvName = defaultCSVName
	}
	view := indexView{CSVName: csvName, Form: form}

	if form.PostURL == "" || form.AccessToken == "" {
		view.Error = "post url and access token are required"
		s.render(w, view)
		return
	}

	postID := form.PostID
	if postID == "" {
		id, err := graph.ExtractPostID(form.PostURL)
		if err != nil {
			view.Error = err.Error()
			s.render(w, view)
			return
		}
		postID = id
	}

	ctx := r.Context()
	comments, hit := s.cachedComments(ctx, form.APIVersion, postID)
	if !hit {
		var err error
		comments, err = s.collect(ctx, form.AccessToken, form.APIVersion, postID)
		if err != nil {
			logger.Error("collect failed", "post_id", postID, "error_kind", graph.KindOf(err), "err", err)
			view.Error = fmt.Sprintf("failed to fetch comments: %v", err)
			s.render(w, view)
			return
		}
		s.storeComments(ctx, form.APIVersion, postID, comments)
	}

	payload, err := export.CSVString(comments)
	if err != nil {
		view.Error = fmt.Sprintf("failed to render csv: %v", err)
		s.render(w, view)
		return
	}

	n := s.cfg.PreviewCount
	if n <= 0 {
		n = 10
	}
	if len(comments) < n {
		n = len(comments)
	}
	view.Collected = true
	view.Preview = comments[:n]
	view.CommentCount = len(comments)
	view.CSVContent = payload
	logger.Info("comments collected", "post_id", postID, "count", len(comments), "cache_hit", hit)
	s.render(w, view)
}

// handleDownload echoes a previously rendered payload back as a CSV
// attachment, so the browser never re-triggers a collection run.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	name := sanitizeCSVName(r.PostFormValue("csv_name"))
	w.Header().Set("content-type", "text/csv; charset=utf-8")
	w.Header().Set("content-disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, r.PostFormValue("csv_content"))
}

func (s *Server) render(w http.ResponseWriter, view indexView) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, view); err != nil {
		logger.Error("render index failed", "err", err)
	}
}

func sanitizeCSVName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return defaultCSVName
	}
	return name
}

func (s *Server) cacheKey(apiVersion, postID string) string {
	return apiVersion + ":" + postID
}

func (s *Server) cachedComments(ctx context.Context, apiVersion, postID string) ([]graph.Comment, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, ok, err := s.cache.Get(ctx, s.cacheKey(apiVersion, postID))
	if err != nil || !ok {
		return nil, false
	}
	var comments []graph.Comment
	if err := json.Unmarshal(b, &comments); err != nil {
		return nil, false
	}
	return comments, true
}

func (s *Server) storeComments(ctx context.Context, apiVersion, postID string, comments []graph.Comment) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(comments)
	if err != nil {
		return
	}
	ttl := time.Duration(s.cfg.CacheDefaultTTLSec) * time.Second
	if err := s.cache.Set(ctx, s.cacheKey(apiVersion, postID), b, ttl); err != nil {
		logger.Warn("cache store failed", "err", err)
	}
}
