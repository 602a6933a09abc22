// Package grid stores the tile map the entity walks on.
package grid

import "fmt"

// Point is an integer tile coordinate.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Tile is one cell of the grid. Occupant is an entity handle, 0 when empty.
type Tile struct {
	X        int
	Y        int
	Walkable bool
	Occupant uint64
}

func (t Tile) Point() Point {
	return Point{X: t.X, Y: t.Y}
}

// Connectivity selects which neighbors a tile has.
type Connectivity int

const (
	// Conn8 allows the four orthogonal and the four diagonal steps.
	Conn8 Connectivity = iota
	// Conn4 allows orthogonal steps only.
	Conn4
)

// Direction offsets in neighbor enumeration order: N, NE, E, SE, S, SW, W, NW.
var offsets8 = [8][2]int{
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

var offsets4 = [4][2]int{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

// Grid is a fixed-size rectangle of tiles stored row-major.
type Grid struct {
	width   int
	height  int
	tiles   []Tile
	conn    Connectivity
	version uint64
}

type Option func(*Grid)

func WithConnectivity(c Connectivity) Option {
	return func(g *Grid) {
		g.conn = c
	}
}

func WithObstacles(points ...Point) Option {
	return func(g *Grid) {
		g.ApplyObstacles(points)
	}
}

// New creates a size x size grid with every tile walkable.
func New(size int, opts ...Option) *Grid {
	return NewRect(size, size, opts...)
}

// NewRect creates a width x height grid. Non-positive dimensions produce an
// empty grid on which every coordinate is out of bounds.
func NewRect(width, height int, opts ...Option) *Grid {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.tiles[y*width+x] = Tile{X: x, Y: y, Walkable: true}
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Grid) Size() (int, int) {
	if g == nil {
		return 0, 0
	}
	return g.width, g.height
}

func (g *Grid) Connectivity() Connectivity {
	return g.conn
}

// Version increases on every walkability edit.
func (g *Grid) Version() uint64 {
	if g == nil {
		return 0
	}
	return g.version
}

func (g *Grid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Index returns the row-major index of (x,y), or -1 out of bounds.
func (g *Grid) Index(x, y int) int {
	if !g.InBounds(x, y) {
		return -1
	}
	return y*g.width + x
}

func (g *Grid) Tile(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{}, false
	}
	return g.tiles[y*g.width+x], true
}

func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.tiles[y*g.width+x].Walkable
}

// SetWalkable changes a tile's flag. Out-of-bounds edits are ignored and
// report false.
func (g *Grid) SetWalkable(x, y int, walkable bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	t := &g.tiles[y*g.width+x]
	if t.Walkable != walkable {
		t.Walkable = walkable
		g.version++
	}
	return true
}

// ApplyObstacles marks every listed point non-walkable.
func (g *Grid) ApplyObstacles(points []Point) {
	for _, p := range points {
		g.SetWalkable(p.X, p.Y, false)
	}
}

// ResetObstacles makes every tile walkable again.
func (g *Grid) ResetObstacles() {
	if g == nil {
		return
	}
	for i := range g.tiles {
		if !g.tiles[i].Walkable {
			g.tiles[i].Walkable = true
			g.version++
		}
	}
}

// Blocked lists the non-walkable tiles in row-major order.
func (g *Grid) Blocked() []Point {
	if g == nil {
		return nil
	}
	var out []Point
	for _, t := range g.tiles {
		if !t.Walkable {
			out = append(out, t.Point())
		}
	}
	return out
}

func (g *Grid) SetOccupant(x, y int, occupant uint64) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.tiles[y*g.width+x].Occupant = occupant
	return true
}

func (g *Grid) Occupant(x, y int) (uint64, bool) {
	t, ok := g.Tile(x, y)
	if !ok || t.Occupant == 0 {
		return 0, false
	}
	return t.Occupant, true
}

// Neighbors returns the walkable in-bounds tiles adjacent to (x,y) in the
// fixed order N, NE, E, SE, S, SW, W, NW (N, E, S, W for Conn4). Diagonal
// steps past a blocked orthogonal tile are allowed.
func (g *Grid) Neighbors(x, y int) []Tile {
	return g.AppendNeighbors(nil, x, y)
}

// AppendNeighbors is Neighbors without the allocation when dst has room.
func (g *Grid) AppendNeighbors(dst []Tile, x, y int) []Tile {
	if g == nil {
		return dst
	}
	if g.conn == Conn4 {
		for _, d := range offsets4 {
			if t, ok := g.walkableTile(x+d[0], y+d[1]); ok {
				dst = append(dst, t)
			}
		}
		return dst
	}
	for _, d := range offsets8 {
		if t, ok := g.walkableTile(x+d[0], y+d[1]); ok {
			dst = append(dst, t)
		}
	}
	return dst
}

func (g *Grid) walkableTile(x, y int) (Tile, bool) {
	if !g.IsWalkable(x, y) {
		return Tile{}, false
	}
	return g.tiles[y*g.width+x], true
}

// Snapshot returns a deep copy that a background search can read while the
// original keeps changing.
func (g *Grid) Snapshot() *Grid {
	if g == nil {
		return nil
	}
	cp := &Grid{
		width:   g.width,
		height:  g.height,
		tiles:   make([]Tile, len(g.tiles)),
		conn:    g.conn,
		version: g.version,
	}
	copy(cp.tiles, g.tiles)
	return cp
}
