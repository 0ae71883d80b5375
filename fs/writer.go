// Package fs provides file-based storage for extracted post records.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/kmisiak/phscrape"
)

// Ensure Writer implements phscrape.PostSink at compile time.
var _ phscrape.PostSink = (*Writer)(nil)

// Writer appends post records to a JSON Lines file, one record per line.
// The file is opened in append mode, so successive runs accumulate records
// and a crash loses at most the record being written.
// It is safe for concurrent use by multiple goroutines.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewWriter opens (creating if needed) the JSONL file at path for appending.
// Parent directories are created as needed.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Writer{
		file: file,
		enc:  json.NewEncoder(file),
	}, nil
}

// EmitPost appends one post as a single JSON line.
func (w *Writer) EmitPost(ctx context.Context, post *phscrape.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(post)
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
