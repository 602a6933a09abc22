package prefabs

import (
	"context"
	"fmt"
	"strings"

	"github.com/milk9111/isowalk/ecs/component"
	"github.com/milk9111/isowalk/grid"
	"github.com/milk9111/isowalk/iso"
	"github.com/milk9111/isowalk/motion"
	"github.com/milk9111/isowalk/pathfind"
)

func (s *WorldSpec) IsoConfig() iso.Config {
	return iso.Config{TileWidth: s.TileWidth, TileHeight: s.TileHeight}
}

func (s *WorldSpec) Mapper() (*iso.Mapper, error) {
	m, err := iso.NewMapper(s.IsoConfig())
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s mapper: %w", s.Name, err)
	}
	return m, nil
}

// ObstaclePoints returns the listed obstacles followed by any the script adds.
func (s *WorldSpec) ObstaclePoints(ctx context.Context) ([]grid.Point, error) {
	points := make([]grid.Point, 0, len(s.Obstacles))
	for _, o := range s.Obstacles {
		points = append(points, grid.Point{X: o[0], Y: o[1]})
	}
	if s.ObstacleScript == "" {
		return points, nil
	}
	src, err := LoadScript(s.ObstacleScript)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", s.ObstacleScript, err)
	}
	scripted, err := RunObstacleScript(ctx, s.ObstacleScript, src, s.GridSize)
	if err != nil {
		return nil, err
	}
	return append(points, scripted...), nil
}

// Grid builds the walkable grid. Script obstacles on the entity's start tile
// are rejected so the entity never spawns inside a wall.
func (s *WorldSpec) Grid(ctx context.Context) (*grid.Grid, error) {
	points, err := s.ObstaclePoints(ctx)
	if err != nil {
		return nil, err
	}
	conn := grid.Conn8
	if s.Connectivity == 4 {
		conn = grid.Conn4
	}
	g := grid.New(s.GridSize, grid.WithConnectivity(conn), grid.WithObstacles(points...))
	if start := s.Start(); !g.IsWalkable(start.X, start.Y) {
		return nil, invalid("%s: entity.start %s is blocked", s.Name, start)
	}
	return g, nil
}

func (s *WorldSpec) Start() grid.Point {
	return grid.Point{X: s.Entity.Start[0], Y: s.Entity.Start[1]}
}

func (s *WorldSpec) Facing() motion.Direction {
	d, _ := motion.ParseDirection(strings.ToUpper(s.Entity.Facing))
	return d
}

func (s *WorldSpec) Controller() *motion.Controller {
	start := s.Start()
	return motion.New(float64(start.X), float64(start.Y),
		motion.WithSpeed(s.Entity.Speed),
		motion.WithSnapThreshold(s.Entity.SnapThreshold),
		motion.WithFacing(s.Facing()),
	)
}

func (s *WorldSpec) PathfindOptions() []pathfind.Option {
	h, _ := pathfind.HeuristicByName(s.Heuristic)
	return []pathfind.Option{
		pathfind.WithHeuristic(h),
		pathfind.WithMaxNodes(s.MaxNodes),
	}
}

func (s *WorldSpec) Animation() component.Animation {
	return component.Animation{
		IdleFrames:   s.Animation.IdleFrames,
		WalkFrames:   s.Animation.WalkFrames,
		FrameSeconds: float64(s.Animation.FrameMS) / 1000,
	}
}
