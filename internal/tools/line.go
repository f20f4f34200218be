package tools

import "PixelBoard/internal/state"

// Line returns the cells on the segment from a to b, both ends included,
// using Bresenham's algorithm.
func Line(a, b state.Point) []state.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	out := make([]state.Point, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	e := dx + dy
	for {
		out = append(out, state.Pt(x, y))
		if x == b.X && y == b.Y {
			return out
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
