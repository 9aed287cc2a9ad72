package main

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/hexGo/internal/vc/vctest"
	"github.com/janpfeifer/hexGo/internal/vcset"
)

// Results aggregated over all workers.
type Results struct {
	mu                         sync.Mutex
	workers, iterations        int
	mutations, revertedEntries int
	elapsed                    time.Duration
}

func (r *Results) add(iterations, mutations, revertedEntries int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.iterations += iterations
	r.mutations += mutations
	r.revertedEntries += revertedEntries
}

// runWorkers runs one worker per unit of parallelism, each on its own fork of base.
// base must not be changed while workers are running.
func runWorkers(ctx context.Context, base *vcset.VCSet) (*Results, error) {
	r := &Results{workers: getParallelism()}
	start := time.Now()
	var wg errgroup.Group
	baseSession := vcset.NewSession(base)
	for workerIdx := range r.workers {
		wg.Go(func() error {
			return runWorker(ctx, workerIdx, baseSession.Fork(), r)
		})
	}
	err := wg.Wait()
	r.elapsed = time.Since(start)
	return r, err
}

// runWorker descends and backtracks -iterations times on its session, checking that every
// iteration ends with the set it started with.
func runWorker(ctx context.Context, workerIdx int, session *vcset.Session, r *Results) error {
	set := session.Set()
	snapshot := set.Clone()
	gen := vctest.NewGenerator(set.Board(), *flagSeed+uint64(workerIdx)+1, *flagCarrier)
	var iterations, mutations, revertedEntries int
	defer func() { r.add(iterations, mutations, revertedEntries) }()

	for range *flagIters {
		if ctx.Err() != nil {
			return nil
		}
		for range *flagDepth {
			session.Mark()
			mutations += randomMutations(gen, session, *flagOps)
		}
		revertedEntries += session.Log().Len() - *flagDepth
		for session.Depth() > 0 {
			if err := session.TryBacktrack(); err != nil {
				return errors.WithMessagef(err, "worker #%d, iteration %d", workerIdx, iterations)
			}
		}
		if x, y, kind, found := set.Diff(snapshot); found {
			board := set.Board()
			return errors.Errorf("worker #%d, iteration %d: backtracking didn't restore %s connections between %s and %s",
				workerIdx, iterations, kind, board.PointName(x), board.PointName(y))
		}
		iterations++
	}
	klog.V(1).Infof("Worker #%d finished: %d iterations, %d mutations", workerIdx, iterations, mutations)
	return nil
}

// randomMutations applies numOps random mutations to the session, and returns how many
// changed the set.
func randomMutations(gen *vctest.Generator, session *vcset.Session, numOps int) (changed int) {
	set := session.Set()
	for range numOps {
		v := gen.Random()
		var ok bool
		switch gen.IntN(4) {
		case 0, 1:
			ok = session.Add(v)
		case 2:
			if existing := set.VCs(v.X(), v.Y(), v.Kind()); len(existing) > 0 {
				ok = session.Remove(existing[gen.IntN(len(existing))])
			}
		case 3:
			if best, found := set.SmallestVC(v.X(), v.Y(), v.Kind()); found {
				ok = session.MarkProcessed(best)
			}
		}
		if ok {
			changed++
		}
	}
	return
}

// getParallelism returns the number of workers.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagWorkers > 0 {
		parallelism = *flagWorkers
	}
	return
}
