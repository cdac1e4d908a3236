package graph

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

type ErrorKind string

const (
	ErrorKindUnknown    ErrorKind = "unknown"
	ErrorKindResolution ErrorKind = "resolution"
	ErrorKindHTTP       ErrorKind = "http"
	ErrorKindParse      ErrorKind = "parse"
	ErrorKindCanceled   ErrorKind = "canceled"
	ErrorKindTimeout    ErrorKind = "timeout"
)

type Error struct {
	Kind ErrorKind
	URL  string
	Msg  string
	Err  error
}

func (e Error) Error() string {
	base := e.Msg
	if e.Err != nil {
		if base == "" {
			base = e.Err.Error()
		} else {
			base = fmt.Sprintf("%s: %v", base, e.Err)
		}
	}
	if base == "" {
		base = string(e.Kind)
	}
	if e.URL != "" {
		return fmt.Sprintf("%s (%s)", base, e.URL)
	}
	return base
}

func (e Error) Unwrap() error { return e.Err }

func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return ErrorKindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTimeout
	}
	var ge Error
	if errors.As(err, &ge) && ge.Kind != "" {
		return ge.Kind
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrorKindTimeout
	}
	if strings.Contains(strings.ToLower(err.Error()), "http status=") {
		return ErrorKindHTTP
	}
	return ErrorKindUnknown
}

func NewHTTPStatusError(url string, statusCode int, body string) error {
	msg := fmt.Sprintf("http status=%d", statusCode)

	snippet := strings.TrimSpace(body)
	const maxSnippet = 1024
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}
	if snippet != "" {
		msg = msg + " body=" + snippet
	}

	return Error{
		Kind: ErrorKindHTTP,
		URL:  url,
		Msg:  msg,
	}
}

// transportKind maps a request-level failure (no HTTP response at all)
// to an error kind.
func transportKind(err error) ErrorKind {
	if errors.Is(err, context.Canceled) {
		return ErrorKindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrorKindTimeout
	}
	return ErrorKindHTTP
}
