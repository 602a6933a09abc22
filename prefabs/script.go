package prefabs

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/isowalk/grid"
)

const (
	scriptTimeout   = time.Second
	scriptMaxAllocs = 1 << 20
)

// scriptModules are the tengo stdlib modules obstacle scripts may import.
var scriptModules = []string{"math", "rand", "text", "enum", "fmt"}

// RunObstacleScript runs a tengo script that must leave a global `obstacles`
// array of [x, y] pairs. The grid edge length is available as `size`.
func RunObstacleScript(ctx context.Context, name string, src []byte, size int) ([]grid.Point, error) {
	script := tengo.NewScript(src)
	if err := script.Add("size", size); err != nil {
		return nil, fmt.Errorf("prefabs: script %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap(scriptModules...))
	script.SetMaxAllocs(scriptMaxAllocs)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile %s: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("prefabs: run %s: %w", name, err)
	}

	if !compiled.IsDefined("obstacles") {
		return nil, fmt.Errorf("prefabs: script %s: %w: no obstacles variable", name, ErrInvalidSpec)
	}
	raw := compiled.Get("obstacles").Array()
	out := make([]grid.Point, 0, len(raw))
	for i, item := range raw {
		p, ok := pointFromScript(item)
		if !ok {
			return nil, fmt.Errorf("prefabs: script %s: %w: obstacle %d is %v, want [x, y]", name, ErrInvalidSpec, i, item)
		}
		out = append(out, p)
	}
	return out, nil
}

func pointFromScript(v any) (grid.Point, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return grid.Point{}, false
	}
	x, okX := scriptInt(pair[0])
	y, okY := scriptInt(pair[1])
	return grid.Point{X: x, Y: y}, okX && okY
}

func scriptInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), n == float64(int(n))
	}
	return 0, false
}
