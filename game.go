package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/ecs/component"
	"github.com/milk9111/isowalk/ecs/system"
	"github.com/milk9111/isowalk/grid"
	"github.com/milk9111/isowalk/input"
	"github.com/milk9111/isowalk/iso"
	"github.com/milk9111/isowalk/motion"
	"github.com/milk9111/isowalk/navigation"
	"github.com/milk9111/isowalk/prefabs"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var background = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

type Game struct {
	log      logrus.FieldLogger
	specName string
	spec     *prefabs.WorldSpec

	world      *ecs.World
	scheduler  *ecs.Scheduler
	player     ecs.Entity
	controller *motion.Controller

	mapper     *iso.Mapper
	grid       *grid.Grid
	planner    *navigation.Planner
	router     *input.Router
	projection *system.ProjectionSystem
	render     *system.RenderSystem
	watcher    *prefabs.Watcher

	width, height float64
}

func NewGame(specName string, debug bool, watch bool, log logrus.FieldLogger) (*Game, error) {
	spec, err := prefabs.LoadWorldSpec(specName)
	if err != nil {
		return nil, err
	}
	mapper, err := spec.Mapper()
	if err != nil {
		return nil, err
	}
	g, err := spec.Grid(context.Background())
	if err != nil {
		return nil, err
	}

	game := &Game{
		log:        log,
		specName:   specName,
		spec:       spec,
		world:      ecs.NewWorld(),
		mapper:     mapper,
		grid:       g,
		controller: spec.Controller(),
		width:      baseWidth,
		height:     baseHeight,
	}

	game.planner = navigation.New(
		navigation.WithLogger(log.WithField("component", "planner")),
		navigation.WithPathfindOptions(spec.PathfindOptions()...),
	)
	game.router = input.NewRouter(input.Config{
		Mapper:  mapper,
		Grid:    g,
		Planner: game.planner,
		Mover:   game.controller,
		Logger:  log.WithField("component", "input"),
	})
	game.projection = system.NewProjectionSystem(mapper, game.router.Origin())
	game.render = system.NewRenderSystem(mapper, g, game.router)
	game.render.SetDebug(debug)
	game.recenter()

	if err := game.spawnPlayer(); err != nil {
		game.planner.Close()
		return nil, err
	}

	dt := 1.0 / float64(ebiten.TPS())
	game.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPathfindingSystem(game.router),
		system.NewMotionSystem(dt),
		game.projection,
		system.NewAnimationSystem(dt),
		system.NewEventLogSystem(log),
	)

	if watch {
		w, err := prefabs.NewWatcher(log.WithField("component", "watcher"), "prefabs", "prefabs/scripts")
		if err != nil {
			log.WithError(err).Warn("hot reload disabled")
		} else {
			game.watcher = w
		}
	}

	log.WithFields(logrus.Fields{
		"world":     spec.Name,
		"grid_size": spec.GridSize,
		"heuristic": spec.Heuristic,
		"obstacles": len(g.Blocked()),
	}).Info("world loaded")
	return game, nil
}

func (g *Game) spawnPlayer() error {
	e := g.world.CreateEntity()
	for _, err := range []error{
		ecs.Add(g.world, e, component.PlayerTagComponent, component.PlayerTag{}),
		ecs.Add(g.world, e, component.MotionComponent, component.Motion{Controller: g.controller}),
		ecs.Add(g.world, e, component.TransformComponent, component.Transform{}),
		ecs.Add(g.world, e, component.AnimationComponent, g.spec.Animation()),
		ecs.Add(g.world, e, component.PathfindingComponent, component.Pathfinding{}),
		ecs.Add(g.world, e, component.PointerComponent, component.Pointer{}),
	} {
		if err != nil {
			return fmt.Errorf("spawn player: %w", err)
		}
	}
	g.player = e
	return nil
}

func (g *Game) Update() error {
	g.pollReload()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.render.Draw(g.world, screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.recenter()
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) recenter() {
	cols, rows := g.grid.Size()
	g.router.SetOrigin(g.mapper.CenterOn(g.width, g.height, cols, rows))
	g.projection.SetOrigin(g.router.Origin())
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watcher error")
		default:
			return
		}
	}
}

// reload swaps in the obstacles and search options of the edited world spec.
// Tile size changes need a restart because the mapper is shared by every
// system.
func (g *Game) reload(changed string) {
	log := g.log.WithField("file", changed)
	spec, err := prefabs.LoadWorldSpec(g.specName)
	if err != nil {
		log.WithError(err).Warn("reload failed, keeping current world")
		return
	}
	next, err := spec.Grid(context.Background())
	if err != nil {
		log.WithError(err).Warn("reload failed, keeping current world")
		return
	}
	if spec.IsoConfig() != g.mapper.Config() {
		log.Warn("tile size changed, restart to apply")
	}

	g.spec = spec
	g.planner.SetPathfindOptions(spec.PathfindOptions()...)
	g.grid = next
	g.router.SetGrid(next)
	g.render.SetGrid(next)
	g.recenter()

	if tile := g.controller.Tile(); !next.IsWalkable(tile.X, tile.Y) {
		g.controller.Teleport(spec.Start())
	}
	log.WithFields(logrus.Fields{
		"obstacles": len(next.Blocked()),
		"heuristic": spec.Heuristic,
		"max_nodes": spec.MaxNodes,
	}).Info("world reloaded")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.planner.Close()
}
