package graph

import (
	"errors"
	"testing"
)

func TestExtractPostID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.facebook.com/story.php?story_fbid=777&id=42", "42_777"},
		{"https://www.facebook.com/permalink.php?story_fbid=2&id=1&comment_tracking=x", "1_2"},
		{"https://www.facebook.com/123456_789012", "123456_789012"},
		{"https://www.facebook.com/page/posts/123__456", "123__456"},
		{"https://www.facebook.com/somepage/posts/789012", "somepage_789012"},
		{"https://www.facebook.com/123456789", "123456789"},
	}
	for _, tt := range tests {
		got, err := ExtractPostID(tt.in)
		if err != nil {
			t.Fatalf("ExtractPostID(%q) err: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ExtractPostID(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestExtractPostIDSubstringBeatsPathRules(t *testing.T) {
	// The raw-text scan runs before the /posts/ path rule even when both
	// could match.
	got, err := ExtractPostID("https://www.facebook.com/page/posts/555?ref=11_22")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "11_22" {
		t.Fatalf("got %q, want %q", got, "11_22")
	}
}

func TestExtractPostIDQueryPairBeatsSubstring(t *testing.T) {
	got, err := ExtractPostID("https://www.facebook.com/story.php?story_fbid=9&id=8&x=11_22")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "8_9" {
		t.Fatalf("got %q, want %q", got, "8_9")
	}
}

func TestExtractPostIDNoMatch(t *testing.T) {
	for _, in := range []string{
		"https://www.facebook.com/somepage",
		"https://www.facebook.com/somepage/about",
		"",
	} {
		got, err := ExtractPostID(in)
		if err == nil {
			t.Fatalf("ExtractPostID(%q)=%q, want error", in, got)
		}
		var ge Error
		if !errors.As(err, &ge) || ge.Kind != ErrorKindResolution {
			t.Fatalf("ExtractPostID(%q) kind=%v, want resolution", in, KindOf(err))
		}
	}
}
