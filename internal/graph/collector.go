package graph

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultAPIVersion = "v19.0"
	DefaultPageLimit  = 100
)

type pageFetcher interface {
	FetchPage(context.Context, string) (commentPage, error)
}

type CollectorOptions struct {
	AccessToken string
	APIVersion  string
	BaseURL     string
	PageLimit   int
}

// Collector retrieves all comments for a post by following the server's
// paging.next cursor until it is absent.
type Collector struct {
	client      pageFetcher
	accessToken string
	apiVersion  string
	baseURL     string
	pageLimit   int
}

func NewCollector(client *Client, opts CollectorOptions) *Collector {
	if client == nil {
		client = NewClient(ClientOptions{BaseURL: opts.BaseURL})
	}
	if opts.BaseURL == "" {
		opts.BaseURL = client.BaseURL()
	}
	return newCollector(client, opts)
}

func newCollector(client pageFetcher, opts CollectorOptions) *Collector {
	version := strings.TrimSpace(opts.APIVersion)
	if version == "" {
		version = DefaultAPIVersion
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	limit := opts.PageLimit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return &Collector{
		client:      client,
		accessToken: opts.AccessToken,
		apiVersion:  version,
		baseURL:     base,
		pageLimit:   limit,
	}
}

// firstPageURL carries the full initial parameter set. Later pages come
// from paging.next verbatim and never reapply these parameters.
func (c *Collector) firstPageURL(postID string) string {
	q := url.Values{}
	q.Set("access_token", c.accessToken)
	q.Set("summary", "true")
	q.Set("filter", "stream")
	q.Set("limit", strconv.Itoa(c.pageLimit))
	return fmt.Sprintf("%s/%s/%s/comments?%s",
		c.baseURL, url.PathEscape(c.apiVersion), url.PathEscape(postID), q.Encode())
}

// Stream returns a lazy cursor over the post's comments. A page is
// fetched only when the previous one is exhausted, so memory stays
// bounded for very large threads.
func (c *Collector) Stream(postID string) *Stream {
	return &Stream{fetcher: c.client, nextURL: c.firstPageURL(postID)}
}

// Collect materializes the whole ordered comment sequence. Comments keep
// the API's delivery order (stream filter, pages in cursor order). Any
// page failure discards all progress for the run.
func (c *Collector) Collect(ctx context.Context, postID string) ([]Comment, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	out := make([]Comment, 0, c.pageLimit)
	st := c.Stream(postID)
	for {
		cmt, ok, err := st.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, cmt)
	}
}

// Stream yields one normalized comment at a time, pulling the next page
// on demand. It is not safe for concurrent use.
type Stream struct {
	fetcher pageFetcher
	nextURL string
	buf     []Comment
	done    bool
}

// Next returns the next comment in delivery order. ok is false once the
// server stops returning a paging.next cursor and buffered comments are
// drained. A fetch or decode failure ends the stream.
func (s *Stream) Next(ctx context.Context) (Comment, bool, error) {
	for len(s.buf) == 0 {
		if s.done {
			return Comment{}, false, nil
		}
		pg, err := s.fetcher.FetchPage(ctx, s.nextURL)
		if err != nil {
			s.done = true
			return Comment{}, false, err
		}
		for _, raw := range pg.Data {
			s.buf = append(s.buf, toComment(raw))
		}
		s.nextURL = strings.TrimSpace(pg.Paging.Next)
		if s.nextURL == "" {
			s.done = true
		}
	}
	cmt := s.buf[0]
	s.buf = s.buf[1:]
	return cmt, true, nil
}
