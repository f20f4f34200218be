package ui

import "PixelBoard/internal/state"

var basePalette = []state.Color{
	state.Black,
	state.White,
	state.RGB(255, 0, 0),
	state.RGB(0, 255, 0),
	state.RGB(0, 0, 255),
	state.RGB(255, 255, 0),
	state.RGB(255, 0, 255),
	state.RGB(0, 255, 255),
	state.RGB(128, 128, 128),
	state.RGB(160, 32, 240),
}

const recentLimit = 8

// recentColors keeps the most recently chosen colours, newest first.
type recentColors struct {
	colors []state.Color
}

func (r *recentColors) add(c state.Color) {
	for i, have := range r.colors {
		if have == c {
			r.colors = append(r.colors[:i], r.colors[i+1:]...)
			break
		}
	}
	r.colors = append([]state.Color{c}, r.colors...)
	if len(r.colors) > recentLimit {
		r.colors = r.colors[:recentLimit]
	}
}

func (r *recentColors) list() []state.Color {
	return append([]state.Color(nil), r.colors...)
}
