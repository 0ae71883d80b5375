//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kmisiak/phscrape"
	"github.com/kmisiak/phscrape/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements phscrape.PageFetcher.
var _ phscrape.PageFetcher = (*rod.Fetcher)(nil)

func TestFetcher_Open_RendersJavaScript(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Rendered Post</title></head>
<body>
<div id="root"></div>
<script>
var h1 = document.createElement('h1');
h1.textContent = 'My App';
document.getElementById('root').appendChild(h1);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, err := fetcher.Open(ctx, srv.URL+"/posts/my-app")
	require.NoError(t, err)
	defer page.Close()

	title, err := page.Text("h1")
	require.NoError(t, err)
	assert.Equal(t, "My App", title)
}

func TestFetcher_Open_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {} // never respond
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Open(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPage_MissingElementTimesOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html><html><head><title>Empty</title></head><body></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithElementTimeout(200 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, err := fetcher.Open(ctx, srv.URL)
	require.NoError(t, err)
	defer page.Close()

	start := time.Now()
	_, err = page.Text(".does-not-exist")
	require.Error(t, err)
	assert.Equal(t, phscrape.ENOTFOUND, phscrape.ErrorCode(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}
