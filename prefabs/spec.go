package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/isowalk/motion"
	"github.com/milk9111/isowalk/pathfind"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const DefaultWorld = "world.yaml"

// WorldSpec describes a walkable map and the entity that starts on it.
type WorldSpec struct {
	Name           string        `yaml:"name"`
	GridSize       int           `yaml:"grid_size"`
	Connectivity   int           `yaml:"connectivity"`
	TileWidth      float64       `yaml:"tile_width"`
	TileHeight     float64       `yaml:"tile_height"`
	Heuristic      string        `yaml:"heuristic"`
	MaxNodes       int           `yaml:"max_nodes"`
	Obstacles      [][]int       `yaml:"obstacles"`
	ObstacleScript string        `yaml:"obstacle_script"`
	Entity         EntitySpec    `yaml:"entity"`
	Animation      AnimationSpec `yaml:"animation"`
}

type EntitySpec struct {
	Start         []int   `yaml:"start"`
	Speed         float64 `yaml:"speed"`
	SnapThreshold float64 `yaml:"snap_threshold"`
	Facing        string  `yaml:"facing"`
}

type AnimationSpec struct {
	IdleFrames int `yaml:"idle_frames"`
	WalkFrames int `yaml:"walk_frames"`
	FrameMS    int `yaml:"frame_ms"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadWorldSpec loads, defaults and validates a world spec by name.
func LoadWorldSpec(name string) (*WorldSpec, error) {
	if name == "" {
		name = DefaultWorld
	}
	spec, err := LoadSpec[WorldSpec](name)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// ParseWorldSpec decodes a world spec from raw YAML.
func ParseWorldSpec(data []byte) (*WorldSpec, error) {
	var spec WorldSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal world: %w", err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *WorldSpec) applyDefaults() {
	if s.Connectivity == 0 {
		s.Connectivity = 8
	}
	if s.TileWidth == 0 {
		s.TileWidth = 64
	}
	if s.TileHeight == 0 {
		s.TileHeight = 32
	}
	if s.Heuristic == "" {
		s.Heuristic = "manhattan"
	}
	if s.Entity.Speed == 0 {
		s.Entity.Speed = motion.DefaultSpeed
	}
	if s.Entity.SnapThreshold == 0 {
		s.Entity.SnapThreshold = motion.DefaultSnapThreshold
	}
	if s.Entity.Facing == "" {
		s.Entity.Facing = motion.S.String()
	}
	if s.Animation.IdleFrames == 0 {
		s.Animation.IdleFrames = 12
	}
	if s.Animation.WalkFrames == 0 {
		s.Animation.WalkFrames = 8
	}
	if s.Animation.FrameMS == 0 {
		s.Animation.FrameMS = 100
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}

// Validate checks a spec after defaults have been applied.
func (s *WorldSpec) Validate() error {
	if s.GridSize <= 0 {
		return invalid("grid_size must be positive, got %d", s.GridSize)
	}
	if s.Connectivity != 4 && s.Connectivity != 8 {
		return invalid("connectivity must be 4 or 8, got %d", s.Connectivity)
	}
	if s.TileWidth <= 0 || s.TileHeight <= 0 {
		return invalid("tile size must be positive, got %gx%g", s.TileWidth, s.TileHeight)
	}
	if _, ok := pathfind.HeuristicByName(s.Heuristic); !ok {
		return invalid("unknown heuristic %q", s.Heuristic)
	}
	if s.MaxNodes < 0 {
		return invalid("max_nodes must not be negative, got %d", s.MaxNodes)
	}

	blocked := make(map[[2]int]bool, len(s.Obstacles))
	for i, o := range s.Obstacles {
		if len(o) != 2 {
			return invalid("obstacle %d: want [x, y], got %v", i, o)
		}
		if !s.inBounds(o[0], o[1]) {
			return invalid("obstacle %d: (%d,%d) is off the grid", i, o[0], o[1])
		}
		blocked[[2]int{o[0], o[1]}] = true
	}

	if len(s.Entity.Start) != 2 {
		return invalid("entity.start: want [x, y], got %v", s.Entity.Start)
	}
	sx, sy := s.Entity.Start[0], s.Entity.Start[1]
	if !s.inBounds(sx, sy) {
		return invalid("entity.start (%d,%d) is off the grid", sx, sy)
	}
	if blocked[[2]int{sx, sy}] {
		return invalid("entity.start (%d,%d) is an obstacle", sx, sy)
	}
	if s.Entity.Speed < 0 || s.Entity.SnapThreshold < 0 {
		return invalid("entity speed and snap_threshold must not be negative")
	}
	if _, ok := motion.ParseDirection(strings.ToUpper(s.Entity.Facing)); !ok {
		return invalid("entity.facing %q is not a direction", s.Entity.Facing)
	}
	if s.Animation.IdleFrames < 0 || s.Animation.WalkFrames < 0 || s.Animation.FrameMS < 0 {
		return invalid("animation counts must not be negative")
	}
	return nil
}

func (s *WorldSpec) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.GridSize && y < s.GridSize
}
