package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://graph.facebook.com"

type commentPage struct {
	Data   []rawComment `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

type ClientOptions struct {
	BaseURL    string
	TimeoutSec int
}

// Client fetches comment pages from the Graph API. Every request is a
// single attempt: a failed page is fatal to the run, so there are no
// retry conditions on the underlying resty client.
type Client struct {
	httpClient *resty.Client
	baseURL    string
}

func NewClient(opts ClientOptions) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeoutSec := opts.TimeoutSec
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	rc := resty.New()
	rc.SetTimeout(time.Duration(timeoutSec) * time.Second)
	rc.SetHeader("accept", "application/json")
	return &Client{httpClient: rc, baseURL: base}
}

func (c *Client) BaseURL() string { return c.baseURL }

// FetchPage performs a GET against pageURL, which is either the built
// first-page URL or a paging.next cursor taken from the previous page.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (commentPage, error) {
	resp, err := c.httpClient.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return commentPage{}, Error{Kind: transportKind(err), URL: pageURL, Msg: "fetch comments page", Err: err}
	}
	code := resp.StatusCode()
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return commentPage{}, NewHTTPStatusError(pageURL, code, resp.String())
	}
	var out commentPage
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return commentPage{}, Error{Kind: ErrorKindParse, URL: pageURL, Msg: "decode comments page", Err: err}
	}
	return out, nil
}
