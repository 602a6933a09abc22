package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/milk9111/isowalk/logging"
	"github.com/milk9111/isowalk/prefabs"
)

func main() {
	worldName := flag.String("world", prefabs.DefaultWorld, "world spec in prefabs/")
	queries := flag.Int("n", 10000, "number of random queries")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "concurrent searches")
	seed := flag.Uint64("seed", 1, "query seed")
	dedupe := flag.Bool("dedupe", false, "share identical in-flight searches")
	logLevel := flag.String("log-level", "", "log level")
	logFormat := flag.String("log-format", "", "text or json")
	flag.Parse()

	log := logging.New(logging.Config{Level: *logLevel, Format: *logFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spec, err := prefabs.LoadWorldSpec(*worldName)
	if err != nil {
		log.WithError(err).Fatal("load world")
	}
	g, err := spec.Grid(ctx)
	if err != nil {
		log.WithError(err).Fatal("build grid")
	}

	qs := makeQueries(g, *queries, *seed)
	rep, err := runBench(ctx, g, qs, benchConfig{
		Workers: *workers,
		Dedupe:  *dedupe,
		Options: spec.PathfindOptions(),
	}, log)
	if err != nil {
		log.WithError(err).Fatal("benchmark aborted")
	}

	fmt.Printf("world        %s (%dx%d, %s)\n", spec.Name, spec.GridSize, spec.GridSize, spec.Heuristic)
	fmt.Printf("queries      %d\n", rep.Queries)
	fmt.Printf("found        %d\n", rep.Found)
	fmt.Printf("unreachable  %d\n", rep.Unreachable)
	fmt.Printf("limited      %d\n", rep.Limited)
	fmt.Printf("shared       %d\n", rep.Shared)
	fmt.Printf("expanded/q   %.1f\n", rep.MeanExpanded())
	fmt.Printf("elapsed      %s\n", rep.Elapsed)
	if rep.Elapsed > 0 {
		fmt.Printf("queries/s    %.0f\n", float64(rep.Queries)/rep.Elapsed.Seconds())
	}
}
