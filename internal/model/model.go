package model

import (
	"fmt"
	"strings"
)

// Post is a publication record. The id is unique within the collection and
// immutable once assigned; title and body are mutable via update.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// Draft holds the editable fields of a post as entered in the form or on the
// command line, before they are submitted as a create or an update.
type Draft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

const (
	MinTitleLen = 3
	MinBodyLen  = 10
)

// ValidationError is a local, synchronous field error. It never reaches the
// network layer; callers surface it directly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the draft's form constraints: both fields required, title
// at least MinTitleLen characters, body at least MinBodyLen.
func (d Draft) Validate() error {
	title := strings.TrimSpace(d.Title)
	body := strings.TrimSpace(d.Body)
	if title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if len([]rune(title)) < MinTitleLen {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be at least %d characters", MinTitleLen)}
	}
	if body == "" {
		return &ValidationError{Field: "body", Reason: "required"}
	}
	if len([]rune(body)) < MinBodyLen {
		return &ValidationError{Field: "body", Reason: fmt.Sprintf("must be at least %d characters", MinBodyLen)}
	}
	return nil
}
