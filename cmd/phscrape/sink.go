package main

import (
	"context"

	"github.com/kmisiak/phscrape"
)

// multiSink fans each emitted post out to every sink in order. The first
// failure stops the fan-out so a record is never half-persisted silently.
type multiSink []phscrape.PostSink

func (s multiSink) EmitPost(ctx context.Context, post *phscrape.Post) error {
	for _, sink := range s {
		if err := sink.EmitPost(ctx, post); err != nil {
			return err
		}
	}
	return nil
}
