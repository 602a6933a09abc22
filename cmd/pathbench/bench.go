package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milk9111/isowalk/grid"
	"github.com/milk9111/isowalk/pathfind"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type query struct {
	Start grid.Point
	Goal  grid.Point
}

func (q query) key() string {
	return fmt.Sprintf("%d,%d>%d,%d", q.Start.X, q.Start.Y, q.Goal.X, q.Goal.Y)
}

type benchConfig struct {
	Workers int
	Dedupe  bool
	Options []pathfind.Option
}

type report struct {
	Queries     int
	Found       int
	Unreachable int
	Limited     int
	Shared      int
	Expanded    int
	TotalCost   float64
	Elapsed     time.Duration
}

func (r report) MeanExpanded() float64 {
	if r.Queries == 0 {
		return 0
	}
	return float64(r.Expanded) / float64(r.Queries)
}

// makeQueries draws start/goal pairs from the walkable tiles. The same seed
// always yields the same queries.
func makeQueries(g *grid.Grid, n int, seed uint64) []query {
	w, h := g.Size()
	walkable := make([]grid.Point, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.IsWalkable(x, y) {
				walkable = append(walkable, grid.Point{X: x, Y: y})
			}
		}
	}
	if len(walkable) == 0 || n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]query, n)
	for i := range out {
		out[i] = query{
			Start: walkable[rng.IntN(len(walkable))],
			Goal:  walkable[rng.IntN(len(walkable))],
		}
	}
	return out
}

// runBench splits queries across workers, each with its own Pathfinder over
// the shared read-only grid. With Dedupe set, identical queries in flight at
// the same time share one search.
func runBench(ctx context.Context, g *grid.Grid, queries []query, cfg benchConfig, log logrus.FieldLogger) (report, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(queries) && len(queries) > 0 {
		workers = len(queries)
	}

	var (
		mu      sync.Mutex
		rep     = report{Queries: len(queries)}
		shared  atomic.Int64
		flights singleflight.Group
	)

	started := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for w := 0; w < workers; w++ {
		chunk := queries[w*len(queries)/workers : (w+1)*len(queries)/workers]
		eg.Go(func() error {
			pf := pathfind.New(g, cfg.Options...)
			var local report
			for _, q := range chunk {
				res, err := search(ctx, pf, q, cfg.Dedupe, &flights, &shared)
				switch {
				case errors.Is(err, pathfind.ErrSearchLimit):
					local.Limited++
				case err != nil:
					return err
				case len(res.Path) == 0 && q.Start != q.Goal:
					local.Unreachable++
				default:
					local.Found++
					local.TotalCost += res.Cost
				}
				local.Expanded += res.Expanded
			}
			mu.Lock()
			rep.Found += local.Found
			rep.Unreachable += local.Unreachable
			rep.Limited += local.Limited
			rep.Expanded += local.Expanded
			rep.TotalCost += local.TotalCost
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return rep, err
	}
	rep.Shared = int(shared.Load())
	rep.Elapsed = time.Since(started)

	log.WithFields(logrus.Fields{
		"queries": rep.Queries,
		"workers": workers,
		"elapsed": rep.Elapsed,
	}).Debug("pathbench: done")
	return rep, nil
}

func search(ctx context.Context, pf *pathfind.Pathfinder, q query, dedupe bool, flights *singleflight.Group, shared *atomic.Int64) (pathfind.Result, error) {
	if !dedupe {
		return pf.Search(ctx, q.Start, q.Goal)
	}
	v, err, wasShared := flights.Do(q.key(), func() (any, error) {
		return pf.Search(ctx, q.Start, q.Goal)
	})
	if wasShared {
		shared.Add(1)
	}
	res, _ := v.(pathfind.Result)
	return res, err
}
