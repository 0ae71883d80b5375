package main

import (
	"fmt"

	"github.com/kmisiak/phscrape"
	"github.com/kmisiak/phscrape/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := phscrape.PostFilter{}
	if c.Slug != "" {
		filter.Slug = &c.Slug
	}

	posts, err := deps.Posts.FindPosts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", phscrape.ErrorMessage(err))
		return err
	}

	w, err := fs.NewWriter(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to open %q: %v\n", c.Path, err)
		return err
	}
	defer w.Close()

	for _, p := range posts {
		if err := w.EmitPost(deps.Ctx, p); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", phscrape.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Exported %d posts to %s\n", len(posts), c.Path)

	return nil
}
