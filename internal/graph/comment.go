package graph

import "strconv"

// Comment is one normalized comment record. It is built once from a raw
// API record and never mutated. Optional fields are nil when the API
// omits the corresponding object or key.
type Comment struct {
	CommentID   string  `json:"comment_id"`
	CreatedTime string  `json:"created_time"`
	AuthorID    *string `json:"author_id,omitempty"`
	AuthorName  *string `json:"author_name,omitempty"`
	Message     string  `json:"message"`
	ParentID    *string `json:"parent_id,omitempty"`
	LikeCount   *int64  `json:"like_count,omitempty"`
}

type rawActor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawParent struct {
	ID string `json:"id"`
}

type rawComment struct {
	ID          string     `json:"id"`
	CreatedTime string     `json:"created_time"`
	From        *rawActor  `json:"from"`
	Message     string     `json:"message"`
	Parent      *rawParent `json:"parent"`
	LikeCount   *int64     `json:"like_count"`
}

func toComment(raw rawComment) Comment {
	c := Comment{
		CommentID:   raw.ID,
		CreatedTime: raw.CreatedTime,
		Message:     raw.Message,
		LikeCount:   raw.LikeCount,
	}
	if raw.From != nil {
		id := raw.From.ID
		name := raw.From.Name
		c.AuthorID = &id
		c.AuthorName = &name
	}
	if raw.Parent != nil {
		id := raw.Parent.ID
		c.ParentID = &id
	}
	return c
}

// Author returns the display name for previews.
func (c Comment) Author() string {
	if c.AuthorName != nil && *c.AuthorName != "" {
		return *c.AuthorName
	}
	return "Unknown author"
}

func CSVHeader() []string {
	return []string{
		"comment_id",
		"created_time",
		"author_id",
		"author_name",
		"message",
		"parent_id",
		"like_count",
	}
}

func (c Comment) CSVRow() []string {
	return []string{
		c.CommentID,
		c.CreatedTime,
		strCell(c.AuthorID),
		strCell(c.AuthorName),
		c.Message,
		strCell(c.ParentID),
		intCell(c.LikeCount),
	}
}

func strCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
