// Package pathfind implements A* search over a tile grid.
package pathfind

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/isowalk/grid"
)

// ErrSearchLimit is returned by Search when the expansion cap is reached.
var ErrSearchLimit = errors.New("pathfind: node limit reached")

// Graph is the read-only view of a grid the search needs.
type Graph interface {
	Size() (int, int)
	IsWalkable(x, y int) bool
	AppendNeighbors(dst []grid.Tile, x, y int) []grid.Tile
}

// Path runs from the first step after the start to the goal, inclusive.
type Path []grid.Point

// Result describes a finished search. Visited lists tiles in expansion order.
type Result struct {
	Path     Path
	Cost     float64
	Expanded int
	Visited  []grid.Point
}

// node is an arena slot, one per tile. parent is the arena index of the node
// that discovered this one with the best known cost, -1 for the start.
type node struct {
	g, h, f   float64
	parent    int
	seq       int
	heapIndex int
	open      bool
	closed    bool
}

type Pathfinder struct {
	graph     Graph
	heuristic Heuristic
	maxNodes  int
}

type Option func(*Pathfinder)

func WithHeuristic(h Heuristic) Option {
	return func(p *Pathfinder) {
		if h != nil {
			p.heuristic = h
		}
	}
}

// WithMaxNodes caps how many nodes a search expands. Zero means unlimited.
func WithMaxNodes(n int) Option {
	return func(p *Pathfinder) {
		if n > 0 {
			p.maxNodes = n
		}
	}
}

func New(g Graph, opts ...Option) *Pathfinder {
	p := &Pathfinder{graph: g, heuristic: Manhattan}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// FindPath returns the path from start to goal, or an empty path when either
// end is not walkable, start equals goal, or the goal is unreachable.
func (p *Pathfinder) FindPath(start, goal grid.Point) Path {
	res, err := p.Search(context.Background(), start, goal)
	if err != nil {
		return nil
	}
	return res.Path
}

// Search runs A* and reports the search statistics. It only returns an error
// when ctx is done or the node limit is hit; an unreachable goal is an empty
// Result.
func (p *Pathfinder) Search(ctx context.Context, start, goal grid.Point) (Result, error) {
	if p == nil || p.graph == nil {
		return Result{}, nil
	}
	if !p.graph.IsWalkable(start.X, start.Y) || !p.graph.IsWalkable(goal.X, goal.Y) {
		return Result{}, nil
	}
	if start == goal {
		return Result{}, nil
	}

	width, height := p.graph.Size()
	nodes := make([]node, width*height)
	for i := range nodes {
		nodes[i].parent = -1
		nodes[i].heapIndex = -1
	}
	open := &openSet{nodes: nodes, items: make([]int, 0, 64)}

	startIdx := start.Y*width + start.X
	goalIdx := goal.Y*width + goal.X
	h := p.heuristic(start, goal)
	nodes[startIdx] = node{g: 0, h: h, f: h, parent: -1, heapIndex: -1, open: true}
	heap.Push(open, startIdx)

	seq := 1
	res := Result{Visited: make([]grid.Point, 0, 64)}
	neighbors := make([]grid.Tile, 0, 8)

	for open.Len() > 0 {
		if res.Expanded%32 == 0 {
			if err := ctx.Err(); err != nil {
				return res, fmt.Errorf("pathfind: search %v -> %v: %w", start, goal, err)
			}
		}

		curIdx := heap.Pop(open).(int)
		cur := &nodes[curIdx]
		cur.open = false
		cur.closed = true
		curPos := grid.Point{X: curIdx % width, Y: curIdx / width}

		res.Expanded++
		res.Visited = append(res.Visited, curPos)

		if curIdx == goalIdx {
			res.Path = reconstructPath(nodes, width, goalIdx)
			res.Cost = cur.g
			return res, nil
		}
		if p.maxNodes > 0 && res.Expanded >= p.maxNodes {
			return Result{Expanded: res.Expanded, Visited: res.Visited}, ErrSearchLimit
		}

		neighbors = p.graph.AppendNeighbors(neighbors[:0], curPos.X, curPos.Y)
		for _, t := range neighbors {
			nPos := t.Point()
			nIdx := nPos.Y*width + nPos.X
			n := &nodes[nIdx]
			if n.closed {
				continue
			}

			tentative := cur.g + stepCost(curPos, nPos)
			if !n.open {
				n.g = tentative
				n.h = p.heuristic(nPos, goal)
				n.f = tentative + n.h
				n.parent = curIdx
				n.seq = seq
				n.open = true
				seq++
				heap.Push(open, nIdx)
			} else if tentative < n.g {
				n.g = tentative
				n.f = tentative + n.h
				n.parent = curIdx
				heap.Fix(open, n.heapIndex)
			}
		}
	}

	res.Path = nil
	return res, nil
}

// reconstructPath follows parent indices back to the start and returns the
// steps in walking order, start excluded.
func reconstructPath(nodes []node, width, goalIdx int) Path {
	path := make(Path, 0, 16)
	cur := goalIdx
	for nodes[cur].parent != -1 {
		path = append(path, grid.Point{X: cur % width, Y: cur / width})
		cur = nodes[cur].parent
		if len(path) > len(nodes) {
			panic("pathfind: parent chain does not terminate")
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Length returns the walking cost of a path that starts next to from.
func (p Path) Length(from grid.Point) float64 {
	total := 0.0
	prev := from
	for _, step := range p {
		total += stepCost(prev, step)
		prev = step
	}
	return total
}
