package nphase

import (
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// runChunks splits items into at most workers contiguous chunks and runs work on each.
// Outputs are returned in chunk order so merging them is deterministic.
func runChunks[T any](workers int, items []T, work func(chunk []T, out *chunkOutput) error) ([]*chunkOutput, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if workers <= 1 {
		out := &chunkOutput{}
		if err := work(items, out); err != nil {
			return nil, err
		}
		return []*chunkOutput{out}, nil
	}

	size := (len(items) + workers - 1) / workers
	chunks := lo.Chunk(items, size)
	outs := make([]*chunkOutput, len(chunks))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, chunk := range chunks {
		out := &chunkOutput{}
		outs[i] = out
		g.Go(func() error {
			return work(chunk, out)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}
