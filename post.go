package phscrape

import (
	"context"
	"time"
)

// Post represents a single extracted post-page record. A Post is created once
// per successfully classified post page and is never mutated after it has
// been handed to a sink.
type Post struct {
	ID          string    `json:"id,omitempty"` // assigned by storage sinks
	Title       string    `json:"title"`
	Tagline     string    `json:"tagline"`
	Votes       string    `json:"votes"`    // digits only; empty if not found
	Comments    string    `json:"comments"` // digits only; empty if not found
	Makers      []string  `json:"makers"`   // de-duplicated, discovery order
	Topics      []string  `json:"topics"`   // de-duplicated, discovery order
	ProductURL  string    `json:"productUrl"`
	PHURL       string    `json:"phUrl"`
	Slug        string    `json:"slug"`
	PostedAt    string    `json:"postedAt"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.PHURL == "" {
		return Errorf(EINVALID, "post page URL required")
	}
	return nil
}

// PostSink receives extracted posts. Sinks are append-only: they never update
// or delete a record and they enforce no uniqueness. Implementations must be
// safe for concurrent use by multiple page-processing goroutines.
type PostSink interface {
	// EmitPost appends a post to the sink.
	EmitPost(ctx context.Context, post *Post) error
}

// PostService represents a service for managing stored posts.
type PostService interface {
	PostSink

	// FindPostByID retrieves a post by ID.
	// Returns ENOTFOUND if the post does not exist.
	FindPostByID(ctx context.Context, id string) (*Post, error)

	// FindPosts retrieves posts matching the filter.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)
}

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	ID   *string `json:"id"`
	Slug *string `json:"slug"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
