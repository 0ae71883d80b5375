package mock

import (
	"context"
	"sync"

	"github.com/kmisiak/phscrape"
)

var _ phscrape.PostSink = (*PostSink)(nil)

// PostSink is a mock implementation of phscrape.PostSink.
// If EmitPostFn is nil, emitted posts are recorded in Posts instead.
type PostSink struct {
	EmitPostFn func(ctx context.Context, post *phscrape.Post) error

	mu    sync.Mutex
	Posts []*phscrape.Post
}

func (s *PostSink) EmitPost(ctx context.Context, post *phscrape.Post) error {
	if s.EmitPostFn != nil {
		return s.EmitPostFn(ctx, post)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Posts = append(s.Posts, post)
	return nil
}

// Emitted returns a snapshot of the posts recorded so far.
func (s *PostSink) Emitted() []*phscrape.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*phscrape.Post, len(s.Posts))
	copy(out, s.Posts)
	return out
}
