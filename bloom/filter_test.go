package bloom_test

import (
	"fmt"
	"testing"

	"github.com/kmisiak/phscrape/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/posts/my-app"))

	f.Add("https://example.com/posts/my-app")

	assert.True(t, f.Test("https://example.com/posts/my-app"))
	assert.False(t, f.Test("https://example.com/posts/other-app"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)
	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("https://example.com/posts/app-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, count, 10)
}
