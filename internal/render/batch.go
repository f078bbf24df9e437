package render

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mithrel/notion2md/pkg/api"
)

// Batch renders docs concurrently with at most workers goroutines and
// returns the results in input order. It stops early when ctx is done.
func Batch(ctx context.Context, docs []api.Document, workers int) ([]string, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]string, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Document(docs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
