package state

import "fmt"

// Grid is the read-only view the flood fill needs.
type Grid interface {
	Width() int
	Height() int
	GetPixel(x, y int) (Color, error)
}

// FloodFill returns the 4-connected region of cells sharing the seed's
// colour, in visitation order. It returns nil when replacement already equals
// the seed colour. The grid is only read, so the computation may run off the
// owning goroutine as long as the resulting command is applied on it.
func FloodFill(g Grid, seed Point, replacement Color) ([]Point, error) {
	w, h := g.Width(), g.Height()
	if seed.X < 0 || seed.X >= w || seed.Y < 0 || seed.Y >= h {
		return nil, fmt.Errorf("%w: fill seed (%d,%d) outside %dx%d", ErrOutOfBounds, seed.X, seed.Y, w, h)
	}
	target, err := g.GetPixel(seed.X, seed.Y)
	if err != nil {
		return nil, err
	}
	if target == replacement {
		return nil, nil
	}

	visited := make([]bool, w*h)
	queue := []Point{seed}
	visited[seed.Y*w+seed.X] = true
	var region []Point

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region = append(region, p)

		for _, n := range [4]Point{
			{X: p.X + 1, Y: p.Y},
			{X: p.X - 1, Y: p.Y},
			{X: p.X, Y: p.Y + 1},
			{X: p.X, Y: p.Y - 1},
		} {
			if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
				continue
			}
			idx := n.Y*w + n.X
			if visited[idx] {
				continue
			}
			c, err := g.GetPixel(n.X, n.Y)
			if err != nil {
				return nil, err
			}
			if c != target {
				continue
			}
			visited[idx] = true
			queue = append(queue, n)
		}
	}
	return region, nil
}
