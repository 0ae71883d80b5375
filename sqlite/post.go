package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/kmisiak/phscrape"
)

// Compile-time interface verification.
var _ phscrape.PostService = (*PostService)(nil)

// PostService implements phscrape.PostService using SQLite.
type PostService struct {
	db *DB
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

// hashRecord computes xxHash over the extracted field values and returns a
// hex string. The ID and extraction timestamp are excluded so two crawls of
// an unchanged page produce the same hash.
func hashRecord(post *phscrape.Post) string {
	var b strings.Builder
	for _, field := range []string{
		post.PHURL, post.Slug, post.Title, post.Tagline,
		post.Votes, post.Comments, post.ProductURL, post.PostedAt,
	} {
		b.WriteString(field)
		b.WriteByte(0)
	}
	for _, maker := range post.Makers {
		b.WriteString(maker)
		b.WriteByte(0)
	}
	b.WriteByte(0)
	for _, topic := range post.Topics {
		b.WriteString(topic)
		b.WriteByte(0)
	}

	h := xxhash.Sum64String(b.String())
	buf := make([]byte, 8)
	buf[0] = byte(h >> 56)
	buf[1] = byte(h >> 48)
	buf[2] = byte(h >> 40)
	buf[3] = byte(h >> 32)
	buf[4] = byte(h >> 24)
	buf[5] = byte(h >> 16)
	buf[6] = byte(h >> 8)
	buf[7] = byte(h)
	return hex.EncodeToString(buf)
}

// EmitPost appends a post record. The ID and record hash are assigned here;
// an unset extraction timestamp is filled with the current time.
func (s *PostService) EmitPost(ctx context.Context, post *phscrape.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	post.ID = uuid.New().String()
	if post.ExtractedAt.IsZero() {
		post.ExtractedAt = time.Now().UTC()
	}

	makers, err := marshalStrings(post.Makers)
	if err != nil {
		return err
	}
	topics, err := marshalStrings(post.Topics)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO posts (id, slug, title, tagline, votes, comments, makers, topics, product_url, ph_url, posted_at, record_hash, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, post.ID, post.Slug, post.Title, post.Tagline, post.Votes, post.Comments,
		makers, topics, post.ProductURL, post.PHURL, post.PostedAt,
		hashRecord(post), post.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindPostByID retrieves a post by ID.
func (s *PostService) FindPostByID(ctx context.Context, id string) (*phscrape.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, title, tagline, votes, comments, makers, topics, product_url, ph_url, posted_at, extracted_at
		FROM posts
		WHERE id = ?
	`, id)

	post, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, phscrape.Errorf(phscrape.ENOTFOUND, "post not found")
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}

// FindPosts retrieves posts matching the filter, newest extraction first.
func (s *PostService) FindPosts(ctx context.Context, filter phscrape.PostFilter) ([]*phscrape.Post, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, slug, title, tagline, votes, comments, makers, topics, product_url, ph_url, posted_at, extracted_at FROM posts WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY extracted_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*phscrape.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// scanPost scans one posts row using the given Scan function.
func scanPost(scan func(dest ...any) error) (*phscrape.Post, error) {
	var post phscrape.Post
	var makers, topics, extractedAt string

	if err := scan(&post.ID, &post.Slug, &post.Title, &post.Tagline, &post.Votes,
		&post.Comments, &makers, &topics, &post.ProductURL, &post.PHURL,
		&post.PostedAt, &extractedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(makers), &post.Makers); err != nil {
		return nil, fmt.Errorf("failed to parse makers: %w", err)
	}
	if err := json.Unmarshal([]byte(topics), &post.Topics); err != nil {
		return nil, fmt.Errorf("failed to parse topics: %w", err)
	}

	var err error
	post.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// marshalStrings encodes a string slice as a JSON array, mapping nil to "[]"
// so columns never hold SQL NULL.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		return "[]", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
