package main

import (
	"fmt"

	"github.com/kmisiak/phscrape"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := phscrape.PostFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Slug != "" {
		filter.Slug = &c.Slug
	}

	posts, err := deps.Posts.FindPosts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phscrape.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No posts found. Use 'phscrape run' to crawl some.")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  votes=%s  %s\n",
			p.ID, p.ExtractedAt.Format("2006-01-02"), p.Slug, p.Votes, p.Title)
	}

	return nil
}
