package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"comment-collector-go/internal/config"
	"comment-collector-go/internal/graph"
)

func testConfig() config.Config {
	return config.Config{
		APIVersion:         "v19.0",
		CacheBackend:       "memory",
		CacheDefaultTTLSec: 60,
		PreviewCount:       10,
	}
}

func testComments(n int) []graph.Comment {
	out := make([]graph.Comment, 0, n)
	for i := 0; i < n; i++ {
		name := "User"
		out = append(out, graph.Comment{
			CommentID:   "c" + string(rune('0'+i%10)),
			CreatedTime: "2024-01-01T00:00:00+0000",
			AuthorName:  &name,
			Message:     "msg",
		})
	}
	return out
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("content-type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandleIndex(t *testing.T) {
	srv := NewServer(testConfig(), func(ctx context.Context, token, ver, id string) ([]graph.Comment, error) {
		t.Fatalf("GET must not collect")
		return nil, nil
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`name="post_url"`, `name="access_token"`, `value="v19.0"`, `value="comments.csv"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("index missing %q", want)
		}
	}
}

func TestHandleCollectMissingFields(t *testing.T) {
	srv := NewServer(testConfig(), func(ctx context.Context, token, ver, id string) ([]graph.Comment, error) {
		t.Fatalf("must not collect without required fields")
		return nil, nil
	})

	w := postForm(t, srv.Handler(), "/", url.Values{"post_url": {"https://x/1_2"}})
	if !strings.Contains(w.Body.String(), "post url and access token are required") {
		t.Fatalf("missing validation message: %s", w.Body.String())
	}
}

func TestHandleCollectResolutionFailure(t *testing.T) {
	srv := NewServer(testConfig(), func(ctx context.Context, token, ver, id string) ([]graph.Comment, error) {
		t.Fatalf("must not collect when resolution fails")
		return nil, nil
	})

	w := postForm(t, srv.Handler(), "/", url.Values{
		"post_url":     {"https://www.facebook.com/somepage"},
		"access_token": {"tok"},
	})
	if !strings.Contains(w.Body.String(), "unable to derive post id") {
		t.Fatalf("missing resolution error: %s", w.Body.String())
	}
}

func TestHandleCollectSuccess(t *testing.T) {
	var gotPostID, gotVersion string
	srv := NewServer(testConfig(), func(ctx context.Context, token, ver, id string) ([]graph.Comment, error) {
		gotPostID, gotVersion = id, ver
		return testComments(12), nil
	})

	w := postForm(t, srv.Handler(), "/", url.Values{
		"post_url":     {"https://www.facebook.com/page/posts/555"},
		"access_token": {"tok"},
		"csv_name":     {"out.csv"},
	})
	if gotPostID != "page_555" {
		t.Fatalf("postID = %q", gotPostID)
	}
	if gotVersion != "v19.0" {
		t.Fatalf("version = %q", gotVersion)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Fetched 12 comments") {
		t.Fatalf("missing count: %s", body)
	}
	if got := strings.Count(body, "<li>"); got != 10 {
		t.Fatalf("preview items = %d, want 10", got)
	}
	if !strings.Contains(body, "comment_id,created_time") {
		t.Fatalf("missing csv payload: %s", body)
	}
	if !strings.Contains(body, `value="out.csv"`) {
		t.Fatalf("missing csv name: %s", body)
	}
}

func TestHandleCollectExplicitPostIDWins(t *testing.T) {
	var gotPostID string
	srv := NewServer(testConfig(), func(ctx context.Context, token, ver, id string) ([]graph.Comment, error) {
		gotPostID = id
		return nil, nil
	})

	postForm(t, srv.Handler(), "/", url.Values{
		"post_url":     {"https://www.facebook.com/page/posts/555"},
		"access_token": {"tok"},
		"post_id":      {"1_2"},
	})
	if gotPostID != "1_2" {
		t.Fatalf("postID = %q, want explicit 1_2", gotPostID)
	}
}

func TestHandleCollectUsesCache(t *testing.T) {
	calls := 0
	srv := NewServer(testConfig(), func(ctx context.Context, token, ver, id string) ([]graph.Comment, error) {
		calls++
		return testComments(3), nil
	})

	form := url.Values{
		"post_url":     {"https://www.facebook.com/page/posts/555"},
		"access_token": {"tok"},
	}
	postForm(t, srv.Handler(), "/", form)
	w := postForm(t, srv.Handler(), "/", form)
	if calls != 1 {
		t.Fatalf("collect calls = %d, want 1 (second run should hit cache)", calls)
	}
	if !strings.Contains(w.Body.String(), "Fetched 3 comments") {
		t.Fatalf("cached response missing count: %s", w.Body.String())
	}
}

func TestHandleCollectError(t *testing.T) {
	srv := NewServer(testConfig(), func(ctx context.Context, token, ver, id string) ([]graph.Comment, error) {
		return nil, graph.Error{Kind: graph.ErrorKindHTTP, Msg: "http status=500"}
	})

	w := postForm(t, srv.Handler(), "/", url.Values{
		"post_url":     {"https://www.facebook.com/page/posts/555"},
		"access_token": {"tok"},
	})
	body := w.Body.String()
	if !strings.Contains(body, "failed to fetch comments") || !strings.Contains(body, "http status=500") {
		t.Fatalf("missing fetch error: %s", body)
	}
	if strings.Contains(body, "Fetched") {
		t.Fatalf("no results should be rendered on failure: %s", body)
	}
}

func TestHandleDownload(t *testing.T) {
	srv := NewServer(testConfig(), nil)

	w := postForm(t, srv.Handler(), "/download", url.Values{
		"csv_name":    {"../evil/out.csv"},
		"csv_content": {"comment_id\nc1\n"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if ct := w.Header().Get("content-type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content-type = %q", ct)
	}
	cd := w.Header().Get("content-disposition")
	if !strings.Contains(cd, `filename="out.csv"`) {
		t.Fatalf("content-disposition = %q", cd)
	}
	if w.Body.String() != "comment_id\nc1\n" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv := NewServer(testConfig(), nil)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
}
