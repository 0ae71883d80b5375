package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kmisiak/phscrape"
	main "github.com/kmisiak/phscrape/cmd/phscrape"
	"github.com/kmisiak/phscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes stored posts to a JSONL file", func(t *testing.T) {
		t.Parallel()

		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, _ phscrape.PostFilter) ([]*phscrape.Post, error) {
				return []*phscrape.Post{
					{ID: "post-1", Slug: "my-app", PHURL: "https://example.com/posts/my-app"},
					{ID: "post-2", Slug: "other-app", PHURL: "https://example.com/posts/other-app"},
				}, nil
			},
		}

		path := filepath.Join(t.TempDir(), "export.jsonl")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Posts:  posts,
		}

		cmd := &main.ExportCmd{Path: path}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 2 posts")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"slug":"my-app"`)
		assert.Contains(t, string(data), `"slug":"other-app"`)
		assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
	})

	t.Run("passes slug filter to the service", func(t *testing.T) {
		t.Parallel()

		var receivedFilter phscrape.PostFilter
		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, filter phscrape.PostFilter) ([]*phscrape.Post, error) {
				receivedFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Posts:  posts,
		}

		cmd := &main.ExportCmd{Path: filepath.Join(t.TempDir(), "export.jsonl"), Slug: "my-app"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, receivedFilter.Slug)
		assert.Equal(t, "my-app", *receivedFilter.Slug)
	})

	t.Run("returns error when FindPosts fails", func(t *testing.T) {
		t.Parallel()

		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, _ phscrape.PostFilter) ([]*phscrape.Post, error) {
				return nil, phscrape.Errorf(phscrape.EINTERNAL, "database error")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Posts:  posts,
		}

		cmd := &main.ExportCmd{Path: filepath.Join(t.TempDir(), "export.jsonl")}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
