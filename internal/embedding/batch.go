package embedding

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EmbedBatch embeds texts with at most workers concurrent calls. Results keep input order.
func EmbedBatch(ctx context.Context, p Provider, texts []string, workers int) ([][]float32, error) {
	if workers <= 0 {
		workers = 4
	}
	out := make([][]float32, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, text := range texts {
		g.Go(func() error {
			v, err := p.Embed(ctx, text)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
