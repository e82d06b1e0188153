// Package search counts the single obstacle placements that trap the guard
// in a loop.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"guardpatrol/pkg/engine/ctxlog"
	"guardpatrol/pkg/engine/world"
	"guardpatrol/pkg/game/patrol"
)

// ErrBaselineLoops is returned when the unmodified patrol never exits, so
// there is no path to place obstacles on.
var ErrBaselineLoops = errors.New("baseline patrol loops")

// Options controls how trials are scheduled
type Options struct {
	// Workers is the number of concurrent trials. Values below 2 run the
	// trials one after another on the caller's grid.
	Workers int

	// Timeout bounds the whole search. Zero means no limit.
	Timeout time.Duration
}

// Result summarises an obstacle search
type Result struct {
	Candidates int
	Loops      int

	// Placements lists the loop-inducing cells in row-major order
	Placements []world.Position
}

// Candidates returns the cells an obstacle may be placed on: every cell the
// baseline patrol visited except the guard's start. Row-major order.
func Candidates(baseline patrol.Outcome, start world.Position) []world.Position {
	if !baseline.Exited() {
		return nil
	}

	cands := world.SortedPositions(baseline.Visited)
	out := cands[:0]
	for _, p := range cands {
		if p != start {
			out = append(out, p)
		}
	}
	return out
}

// InducesLoop places an obstacle at pos, reruns the patrol from start and
// puts the original tile back before returning.
func InducesLoop(g *world.Grid, start patrol.State, pos world.Position) bool {
	restore, ok := g.Place(pos, world.Obstacle)
	defer restore()
	if !ok {
		return false
	}

	return patrol.Simulate(g, start).Looping()
}

// CountLoops runs the baseline patrol on g and then one trial per candidate.
// With a single worker g is mutated in place, one cell at a time, and every
// cell is restored before CountLoops returns. With more workers each worker
// gets its own clone and g is only read.
func CountLoops(ctx context.Context, g *world.Grid, opts Options) (Result, error) {
	baseline, err := patrol.Run(g)
	if err != nil {
		return Result{}, err
	}
	return CountLoopsFrom(ctx, g, baseline, opts)
}

// CountLoopsFrom is CountLoops for a caller that already ran the baseline
// patrol on g. baseline must come from patrol.Run on the same grid.
func CountLoopsFrom(ctx context.Context, g *world.Grid, baseline patrol.Outcome, opts Options) (Result, error) {
	logger := ctxlog.FromContext(ctx)

	if baseline.Looping() {
		return Result{}, fmt.Errorf("%w: re-entered %v after %d steps", ErrBaselineLoops, baseline.LoopEntry, baseline.Steps)
	}

	startPos, _ := g.FindStart()
	start := patrol.StartState(startPos)
	cands := Candidates(baseline, startPos)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	workers := opts.Workers
	if workers > len(cands) {
		workers = len(cands)
	}

	logger.Info("Obstacle search started.", "candidates", len(cands), "workers", max(workers, 1))
	began := time.Now()

	var (
		loops []bool
		err   error
	)
	if workers < 2 {
		loops, err = runSequential(ctx, g, start, cands)
	} else {
		loops, err = runParallel(ctx, g, start, cands, workers)
	}
	if err != nil {
		return Result{}, fmt.Errorf("obstacle search interrupted: %w", err)
	}

	res := Result{Candidates: len(cands)}
	for i, looped := range loops {
		if looped {
			res.Loops++
			res.Placements = append(res.Placements, cands[i])
		}
	}

	logger.Info("Obstacle search finished.", "loops", res.Loops, "elapsed", time.Since(began))
	return res, nil
}

func runSequential(ctx context.Context, g *world.Grid, start patrol.State, cands []world.Position) ([]bool, error) {
	loops := make([]bool, len(cands))
	for i, p := range cands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loops[i] = InducesLoop(g, start, p)
	}
	return loops, nil
}

// runParallel hands candidate indices to workers. Each worker writes only
// its own slots of loops.
func runParallel(ctx context.Context, g *world.Grid, start patrol.State, cands []world.Position, workers int) ([]bool, error) {
	logger := ctxlog.FromContext(ctx)
	loops := make([]bool, len(cands))

	eg, egCtx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	eg.Go(func() error {
		defer close(jobs)
		for i := range cands {
			select {
			case jobs <- i:
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		workerID := w
		eg.Go(func() error {
			grid := g.Clone()
			done := 0
			for i := range jobs {
				if err := egCtx.Err(); err != nil {
					return err
				}
				loops[i] = InducesLoop(grid, start, cands[i])
				done++
			}
			logger.Debug("Worker finished.", "workerID", workerID, "trials", done)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return loops, nil
}
