package state

const (
	// DefaultMergeGap is the distance in cells under which two dirty
	// rectangles are merged into their bounding box.
	DefaultMergeGap = 2

	// DefaultMaxRects is the number of disjoint rectangles kept before the
	// tracker collapses everything into a single bounding rectangle.
	DefaultMaxRects = 32
)

// Tracker accumulates the cells changed since the last Drain as a short list
// of rectangles. It may over-report but never misses a marked cell.
type Tracker struct {
	rects    []Rect
	mergeGap int
	maxRects int
}

func NewTracker() *Tracker {
	return &Tracker{mergeGap: DefaultMergeGap, maxRects: DefaultMaxRects}
}

// NewTrackerWith builds a tracker with explicit coalescing parameters.
// A negative gap disables merging of disjoint rectangles.
func NewTrackerWith(mergeGap, maxRects int) *Tracker {
	if maxRects < 1 {
		maxRects = 1
	}
	return &Tracker{mergeGap: mergeGap, maxRects: maxRects}
}

// MarkCell marks a single cell dirty.
func (t *Tracker) MarkCell(x, y int) {
	t.Mark(Rect{X: x, Y: y, W: 1, H: 1})
}

// Mark adds r to the dirty set, merging it with any rectangle it touches.
func (t *Tracker) Mark(r Rect) {
	if r.Empty() {
		return
	}
	for _, existing := range t.rects {
		if existing.Covers(r) {
			return
		}
	}

	merged := true
	for merged {
		merged = false
		for i := 0; i < len(t.rects); i++ {
			if t.mergeGap >= 0 && t.rects[i].Near(r, t.mergeGap) || t.rects[i].Overlaps(r) {
				r = r.Union(t.rects[i])
				t.rects = append(t.rects[:i], t.rects[i+1:]...)
				merged = true
				break
			}
		}
	}
	t.rects = append(t.rects, r)

	if len(t.rects) > t.maxRects {
		var all Rect
		for _, rect := range t.rects {
			all = all.Union(rect)
		}
		t.rects = append(t.rects[:0], all)
	}
}

// IsEmpty reports whether anything has been marked since the last Drain.
func (t *Tracker) IsEmpty() bool {
	return len(t.rects) == 0
}

// Drain returns every accumulated rectangle and resets the tracker.
func (t *Tracker) Drain() []Rect {
	if len(t.rects) == 0 {
		return nil
	}
	out := t.rects
	t.rects = nil
	return out
}

// Bounds returns the bounding rectangle of the pending dirty set without
// draining it.
func (t *Tracker) Bounds() Rect {
	var all Rect
	for _, r := range t.rects {
		all = all.Union(r)
	}
	return all
}
