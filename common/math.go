package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Distance is the straight-line distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
