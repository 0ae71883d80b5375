package phscrape_test

import (
	"testing"

	"github.com/kmisiak/phscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		cfg := &phscrape.Config{
			StartURLs:           []string{"https://example.com/"},
			MaxRequestsPerCrawl: 100,
		}
		require.NoError(t, cfg.Validate())
	})

	t.Run("requires start URLs", func(t *testing.T) {
		t.Parallel()

		cfg := &phscrape.Config{MaxRequestsPerCrawl: 100}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, phscrape.EINVALID, phscrape.ErrorCode(err))
	})

	t.Run("rejects negative budget", func(t *testing.T) {
		t.Parallel()

		cfg := &phscrape.Config{
			StartURLs:           []string{"https://example.com/"},
			MaxRequestsPerCrawl: -1,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, phscrape.EINVALID, phscrape.ErrorCode(err))
	})

	t.Run("api token accepted but not required", func(t *testing.T) {
		t.Parallel()

		cfg := &phscrape.Config{
			StartURLs:           []string{"https://example.com/"},
			ProductHuntAPIToken: "secret",
		}
		require.NoError(t, cfg.Validate())
	})
}

func TestPost_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires page URL", func(t *testing.T) {
		t.Parallel()

		post := &phscrape.Post{Title: "My App"}
		err := post.Validate()
		require.Error(t, err)
		assert.Equal(t, phscrape.EINVALID, phscrape.ErrorCode(err))
	})

	t.Run("empty optional fields are valid", func(t *testing.T) {
		t.Parallel()

		post := &phscrape.Post{PHURL: "https://example.com/posts/my-app"}
		require.NoError(t, post.Validate())
	})
}
