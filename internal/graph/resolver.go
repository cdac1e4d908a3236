package graph

import (
	"net/url"
	"regexp"
	"strings"
)

var rePostID = regexp.MustCompile(`\d+_+\d+`)

// ExtractPostID derives a Graph API post identifier from a post URL.
// Rules are tried in order, first match wins:
//  1. story.php style query (?story_fbid=<post>&id=<page>) -> "<page>_<post>"
//  2. an explicit "<digits>_<digits>" substring anywhere in the raw URL
//  3. a /<page>/posts/<post> path -> "<page>_<post>"
//  4. a path that is a single all-digit segment -> that segment
//
// Rule 2 runs on the raw URL text before the path rules, so a numeric
// query parameter that happens to look like "<digits>_<digits>" wins over
// a /posts/ path. That precedence is load-bearing for callers.
func ExtractPostID(postURL string) (string, error) {
	s := strings.TrimSpace(postURL)
	if s == "" {
		return "", Error{Kind: ErrorKindResolution, Msg: "empty post url"}
	}

	u, parseErr := url.Parse(s)
	if parseErr == nil {
		q := u.Query()
		fbid := q.Get("story_fbid")
		page := q.Get("id")
		if fbid != "" && page != "" {
			return page + "_" + fbid, nil
		}
	}

	if m := rePostID.FindString(s); m != "" {
		return m, nil
	}

	if parseErr == nil {
		parts := splitPath(u.Path)
		for i, seg := range parts {
			if seg == "posts" && i+1 < len(parts) {
				return parts[0] + "_" + parts[i+1], nil
			}
		}
		if len(parts) == 1 && allDigits(parts[0]) {
			return parts[0], nil
		}
	}

	return "", Error{
		Kind: ErrorKindResolution,
		URL:  s,
		Msg:  "unable to derive post id from url, provide an explicit post id",
	}
}

func splitPath(p string) []string {
	out := make([]string, 0, 4)
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
