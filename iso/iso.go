// Package iso maps between tile coordinates and isometric screen space.
//
// A tile is a 2:1 diamond: moving one step along the grid x axis moves half a
// tile right and half a tile down on screen, one step along y moves half a tile
// left and half a tile down.
package iso

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTileSize = errors.New("iso: tile width and height must be positive")

const (
	DefaultTileWidth  = 64.0
	DefaultTileHeight = 32.0
)

// Config holds the tile dimensions in pixels.
type Config struct {
	TileWidth  float64
	TileHeight float64
}

func DefaultConfig() Config {
	return Config{TileWidth: DefaultTileWidth, TileHeight: DefaultTileHeight}
}

func (c Config) Validate() error {
	if c.TileWidth <= 0 || c.TileHeight <= 0 || math.IsNaN(c.TileWidth) || math.IsNaN(c.TileHeight) {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidTileSize, c.TileWidth, c.TileHeight)
	}
	return nil
}

// Origin is the screen position of grid (0,0), usually the viewport center.
type Origin struct {
	X float64
	Y float64
}

func CenterOrigin(viewW, viewH float64) Origin {
	return Origin{X: viewW / 2, Y: viewH / 2}
}

// Mapper converts coordinates for one tile size. It is stateless beyond its
// configuration and safe to share.
type Mapper struct {
	halfW float64
	halfH float64
	cfg   Config
}

func NewMapper(cfg Config) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Mapper{halfW: cfg.TileWidth / 2, halfH: cfg.TileHeight / 2, cfg: cfg}, nil
}

func (m *Mapper) Config() Config {
	return m.cfg
}

// GridToScreen projects a (possibly fractional) grid position to screen
// offsets relative to the origin.
func (m *Mapper) GridToScreen(x, y float64) (float64, float64) {
	return (x - y) * m.halfW, (x + y) * m.halfH
}

// GridToScreenAt is GridToScreen shifted by origin.
func (m *Mapper) GridToScreenAt(x, y float64, origin Origin) (float64, float64) {
	sx, sy := m.GridToScreen(x, y)
	return origin.X + sx, origin.Y + sy
}

// ScreenToGridF inverts GridToScreenAt without rounding.
func (m *Mapper) ScreenToGridF(sx, sy float64, origin Origin) (float64, float64) {
	dx := (sx - origin.X) / m.halfW
	dy := (sy - origin.Y) / m.halfH
	return (dy + dx) / 2, (dy - dx) / 2
}

// ScreenToGrid returns the tile whose projected point floors to the given
// screen position.
func (m *Mapper) ScreenToGrid(sx, sy float64, origin Origin) (int, int) {
	fx, fy := m.ScreenToGridF(sx, sy, origin)
	return int(math.Floor(fx)), int(math.Floor(fy))
}

// Corners are the four diamond vertices of a tile on screen.
type Corners struct {
	TopX, TopY       float64
	RightX, RightY   float64
	BottomX, BottomY float64
	LeftX, LeftY     float64
}

// TileCorners returns the diamond drawn around the projected tile point: the
// projected point is the diamond center.
func (m *Mapper) TileCorners(x, y int, origin Origin) Corners {
	cx, cy := m.GridToScreenAt(float64(x), float64(y), origin)
	return Corners{
		TopX: cx, TopY: cy - m.halfH,
		RightX: cx + m.halfW, RightY: cy,
		BottomX: cx, BottomY: cy + m.halfH,
		LeftX: cx - m.halfW, LeftY: cy,
	}
}

// CenterOn returns the origin that puts the middle of a cols x rows grid in
// the middle of the viewport.
func (m *Mapper) CenterOn(viewW, viewH float64, cols, rows int) Origin {
	mx, my := m.GridToScreen(float64(cols-1)/2, float64(rows-1)/2)
	return Origin{X: viewW/2 - mx, Y: viewH/2 - my}
}
