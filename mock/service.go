package mock

import (
	"context"

	"github.com/kmisiak/phscrape"
)

var _ phscrape.PostService = (*PostService)(nil)

// PostService is a mock implementation of phscrape.PostService.
type PostService struct {
	PostSink

	FindPostByIDFn func(ctx context.Context, id string) (*phscrape.Post, error)
	FindPostsFn    func(ctx context.Context, filter phscrape.PostFilter) ([]*phscrape.Post, error)
}

func (s *PostService) FindPostByID(ctx context.Context, id string) (*phscrape.Post, error) {
	return s.FindPostByIDFn(ctx, id)
}

func (s *PostService) FindPosts(ctx context.Context, filter phscrape.PostFilter) ([]*phscrape.Post, error) {
	return s.FindPostsFn(ctx, filter)
}
