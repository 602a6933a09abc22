// Package navigation runs path searches off the tick loop and hands the
// results back to it.
package navigation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/milk9111/isowalk/grid"
	"github.com/milk9111/isowalk/logging"
	"github.com/milk9111/isowalk/pathfind"
	"github.com/sirupsen/logrus"
)

// Result is a finished search tagged with the generation that requested it.
type Result struct {
	Generation uint64
	Start      grid.Point
	Goal       grid.Point
	Path       pathfind.Path
	Expanded   int
	Err        error
}

// Stats counts what happened to requests so far.
type Stats struct {
	Requested uint64
	Delivered uint64
	Dropped   uint64
}

// Planner owns at most one live search. A new Request supersedes the previous
// one: its context is cancelled and any result it still produces is dropped
// because its generation is no longer current. Only the latest result is
// kept until Poll picks it up.
//
// Request, Poll and Close are meant to be called from the tick loop.
type Planner struct {
	log      logrus.FieldLogger
	findOpts []pathfind.Option
	inline   bool

	generation atomic.Uint64
	requested  atomic.Uint64
	delivered  atomic.Uint64
	dropped    atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	ready  *Result
	closed bool

	wg sync.WaitGroup
}

type Option func(*Planner)

func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Planner) {
		if log != nil {
			p.log = log
		}
	}
}

// WithPathfindOptions configures every search the planner runs.
func WithPathfindOptions(opts ...pathfind.Option) Option {
	return func(p *Planner) {
		p.findOpts = append(p.findOpts, opts...)
	}
}

// WithSync runs searches inline inside Request. Results still come out of
// Poll so callers do not change.
func WithSync() Option {
	return func(p *Planner) {
		p.inline = true
	}
}

func New(opts ...Option) *Planner {
	p := &Planner{log: logging.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Generation is the id of the most recent request.
func (p *Planner) Generation() uint64 {
	return p.generation.Load()
}

// Request starts a search on a snapshot of g and returns its generation.
// The snapshot is taken here, on the caller's goroutine, so later edits to g
// never race with the search.
func (p *Planner) Request(g *grid.Grid, start, goal grid.Point) uint64 {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return p.generation.Load()
	}
	if p.cancel != nil {
		p.cancel()
	}
	gen := p.generation.Add(1)
	p.requested.Add(1)
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	opts := p.findOpts
	p.mu.Unlock()

	snap := g.Snapshot()
	log := p.log.WithFields(logrus.Fields{"generation": gen, "start": start, "goal": goal})
	log.Debug("navigation: search requested")

	if p.inline {
		p.deliver(p.run(ctx, snap, opts, gen, start, goal))
		return gen
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.deliver(p.run(ctx, snap, opts, gen, start, goal))
	}()
	return gen
}

// deliver stores res as the pending result unless a newer request has
// superseded it. It never blocks, so finished searches always exit.
func (p *Planner) deliver(res Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if res.Generation != p.generation.Load() || errors.Is(res.Err, context.Canceled) {
		p.dropped.Add(1)
		p.log.WithField("generation", res.Generation).Debug("navigation: dropping stale result")
		return
	}
	if p.ready != nil {
		p.dropped.Add(1)
	}
	p.ready = &res
}

func (p *Planner) run(ctx context.Context, g *grid.Grid, opts []pathfind.Option, gen uint64, start, goal grid.Point) Result {
	found, err := pathfind.New(g, opts...).Search(ctx, start, goal)
	return Result{
		Generation: gen,
		Start:      start,
		Goal:       goal,
		Path:       found.Path,
		Expanded:   found.Expanded,
		Err:        err,
	}
}

// SetPathfindOptions replaces the options used by later requests. A search
// already running keeps the options it started with.
func (p *Planner) SetPathfindOptions(opts ...pathfind.Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.findOpts = append([]pathfind.Option(nil), opts...)
}

// Poll returns the result of the current generation if it has arrived.
// Results from superseded requests are discarded.
func (p *Planner) Poll() (Result, bool) {
	p.mu.Lock()
	ready := p.ready
	p.ready = nil
	p.mu.Unlock()
	if ready == nil {
		return Result{}, false
	}
	if ready.Generation != p.generation.Load() {
		p.dropped.Add(1)
		p.log.WithField("generation", ready.Generation).Debug("navigation: dropping stale result")
		return Result{}, false
	}
	p.delivered.Add(1)
	return *ready, true
}

// Wait blocks until every search started so far has finished. Tests and
// command line tools use it; the tick loop never should.
func (p *Planner) Wait() {
	p.wg.Wait()
}

func (p *Planner) Stats() Stats {
	return Stats{
		Requested: p.requested.Load(),
		Delivered: p.delivered.Load(),
		Dropped:   p.dropped.Load(),
	}
}

// Close cancels the live search and waits for its goroutine to exit.
func (p *Planner) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	p.wg.Wait()
}
