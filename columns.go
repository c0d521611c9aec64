package phiwave

import (
	"golang.org/x/sync/errgroup"
)

// columnFunc transforms column j. Each instance owns private scratch and
// engine state.
type columnFunc func(j int)

// runColumns processes cols columns with up to workers goroutines.
//
// Columns are split into contiguous chunks, one per worker, and every
// worker gets its own columnFunc from newWorker. All workers are built
// before any column is processed, so a construction error means no work
// was done. Results do not depend on the worker count.
func runColumns(cols, workers int, newWorker func() (columnFunc, error)) error {
	workers = min(max(workers, 1), cols)

	fns := make([]columnFunc, workers)
	for w := range fns {
		fn, err := newWorker()
		if err != nil {
			return err
		}
		fns[w] = fn
	}

	if workers == 1 {
		for j := range cols {
			fns[0](j)
		}
		return nil
	}

	chunk := (cols + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for w, fn := range fns {
		start := w * chunk
		end := min(start+chunk, cols)
		if start >= end {
			break
		}
		g.Go(func() error {
			for j := start; j < end; j++ {
				fn(j)
			}
			return nil
		})
	}
	return g.Wait()
}
