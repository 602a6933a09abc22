package motion

import "math"

// Direction is one of the eight compass facings.
type Direction uint8

const (
	N Direction = iota
	NE
	E
	SE
	S
	SW
	W
	NW
	directionCount
)

var directionNames = [directionCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Sprite sheets lay their rows out NW, W, SW, S, SE, E, NE, N.
var directionRows = [directionCount]int{
	N:  7,
	NE: 6,
	E:  5,
	SE: 4,
	S:  3,
	SW: 2,
	W:  1,
	NW: 0,
}

func (d Direction) String() string {
	if d >= directionCount {
		return "?"
	}
	return directionNames[d]
}

func (d Direction) Valid() bool {
	return d < directionCount
}

// SheetRow is the sprite sheet row for the facing.
func (d Direction) SheetRow() int {
	if d >= directionCount {
		return directionRows[S]
	}
	return directionRows[d]
}

// ParseDirection accepts the labels produced by String.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return S, false
}

// Directions lists every facing in enumeration order.
func Directions() []Direction {
	out := make([]Direction, 0, directionCount)
	for d := N; d < directionCount; d++ {
		out = append(out, d)
	}
	return out
}

// DirectionFromDelta maps a single grid step to the facing the character art
// uses for it. Screen north is grid (-1,-1), so the labels are rotated from
// the grid axes and not symmetric. ok is false for deltas that are not a
// unit step.
func DirectionFromDelta(dx, dy int) (Direction, bool) {
	switch {
	case dx == -1 && dy == -1:
		return N, true
	case dx == 1 && dy == 1:
		return S, true
	case dx == 1 && dy == -1:
		return E, true
	case dx == -1 && dy == 1:
		return W, true
	case dx == 0 && dy == -1:
		return NE, true
	case dx == -1 && dy == 0:
		return NW, true
	case dx == 1 && dy == 0:
		return SE, true
	case dx == 0 && dy == 1:
		return SW, true
	}
	return S, false
}

// GetDirection picks a facing from the larger of the two components of the
// movement from (x1,y1) to (x2,y2), using the smaller one to pick the
// diagonal.
func GetDirection(x1, y1, x2, y2 float64) Direction {
	dx := x2 - x1
	dy := y2 - y1

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			switch {
			case dy > 0:
				return SE
			case dy < 0:
				return NE
			}
			return E
		}
		switch {
		case dy > 0:
			return SW
		case dy < 0:
			return NW
		}
		return W
	}

	if dy > 0 {
		switch {
		case dx > 0:
			return SE
		case dx < 0:
			return SW
		}
		return S
	}
	switch {
	case dx > 0:
		return NE
	case dx < 0:
		return NW
	}
	return N
}

// facingToward uses the step table for the rounded delta and falls back to
// GetDirection for anything else. Halves round up.
func facingToward(x, y, tx, ty float64) Direction {
	dx := int(math.Floor(tx - x + 0.5))
	dy := int(math.Floor(ty - y + 0.5))
	if d, ok := DirectionFromDelta(dx, dy); ok {
		return d
	}
	return GetDirection(x, y, tx, ty)
}

var directionDeltas = [directionCount][2]int{
	N:  {-1, -1},
	NE: {0, -1},
	E:  {1, -1},
	SE: {1, 0},
	S:  {1, 1},
	SW: {0, 1},
	W:  {-1, 1},
	NW: {-1, 0},
}

// Delta is the grid step DirectionFromDelta maps to d.
func (d Direction) Delta() (int, int) {
	if d >= directionCount {
		return 0, 0
	}
	return directionDeltas[d][0], directionDeltas[d][1]
}
