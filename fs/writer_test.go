package fs_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kmisiak/phscrape"
	"github.com/kmisiak/phscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readLines parses each line of a JSONL file into a Post.
func readLines(t *testing.T, path string) []*phscrape.Post {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var posts []*phscrape.Post
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var post phscrape.Post
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &post))
		posts = append(posts, &post)
	}
	require.NoError(t, scanner.Err())
	return posts
}

func TestWriter_EmitPost(t *testing.T) {
	t.Parallel()

	t.Run("writes one JSON line per post", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "posts.jsonl")
		w, err := fs.NewWriter(path)
		require.NoError(t, err)
		defer w.Close()

		ctx := context.Background()
		post := &phscrape.Post{
			Title:       "My App",
			Tagline:     "Ship faster",
			Votes:       "128",
			Makers:      []string{"Alice"},
			PHURL:       "https://example.com/posts/my-app",
			Slug:        "my-app",
			ExtractedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, w.EmitPost(ctx, post))
		require.NoError(t, w.EmitPost(ctx, &phscrape.Post{PHURL: "https://example.com/posts/other", Slug: "other"}))

		posts := readLines(t, path)
		require.Len(t, posts, 2)
		assert.Equal(t, "My App", posts[0].Title)
		assert.Equal(t, []string{"Alice"}, posts[0].Makers)
		assert.Equal(t, "other", posts[1].Slug)
	})

	t.Run("appends across reopens", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "posts.jsonl")
		ctx := context.Background()

		w, err := fs.NewWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.EmitPost(ctx, &phscrape.Post{PHURL: "https://example.com/posts/first"}))
		require.NoError(t, w.Close())

		w, err = fs.NewWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.EmitPost(ctx, &phscrape.Post{PHURL: "https://example.com/posts/second"}))
		require.NoError(t, w.Close())

		posts := readLines(t, path)
		require.Len(t, posts, 2)
		assert.Equal(t, "https://example.com/posts/first", posts[0].PHURL)
		assert.Equal(t, "https://example.com/posts/second", posts[1].PHURL)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "posts.jsonl")
		w, err := fs.NewWriter(path)
		require.NoError(t, err)
		defer w.Close()

		require.NoError(t, w.EmitPost(context.Background(), &phscrape.Post{PHURL: "https://example.com/posts/my-app"}))
		assert.FileExists(t, path)
	})

	t.Run("rejects invalid post", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "posts.jsonl")
		w, err := fs.NewWriter(path)
		require.NoError(t, err)
		defer w.Close()

		err = w.EmitPost(context.Background(), &phscrape.Post{})
		require.Error(t, err)
		assert.Equal(t, phscrape.EINVALID, phscrape.ErrorCode(err))
		assert.Empty(t, readLines(t, path))
	})

	t.Run("handles concurrent emissions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "posts.jsonl")
		w, err := fs.NewWriter(path)
		require.NoError(t, err)
		defer w.Close()

		ctx := context.Background()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, w.EmitPost(ctx, &phscrape.Post{PHURL: "https://example.com/posts/my-app"}))
			}()
		}
		wg.Wait()

		// Every line must be valid JSON; interleaved writes would corrupt it.
		assert.Len(t, readLines(t, path), 10)
	})
}
