package grid

// Scroll is the viewport offset into the content, in pixels
type Scroll struct {
	X, Y float64
}

// Clamp pins the offset into [0, content - viewport] on both axes
func (s Scroll) Clamp(c Config, viewportW, viewportH float64) Scroll {
	s.X = clamp(s.X, 0, max(0, c.ContentWidth()-gridSpan(viewportW, c.LabelWidth)))
	s.Y = clamp(s.Y, 0, max(0, c.ContentHeight()-gridSpan(viewportH, c.HeaderHeight)))
	return s
}

// By scrolls by (dx, dy) and clamps
func (s Scroll) By(dx, dy float64, c Config, viewportW, viewportH float64) Scroll {
	return Scroll{X: s.X + dx, Y: s.Y + dy}.Clamp(c, viewportW, viewportH)
}

// CenterOn scrolls so the given grid-local point sits mid-viewport
func (s Scroll) CenterOn(gx, gy float64, c Config, viewportW, viewportH float64) Scroll {
	return Scroll{
		X: gx - gridSpan(viewportW, c.LabelWidth)/2,
		Y: gy - gridSpan(viewportH, c.HeaderHeight)/2,
	}.Clamp(c, viewportW, viewportH)
}

// gridSpan is the part of the viewport left after an inset
func gridSpan(viewport, inset float64) float64 {
	return max(0, viewport-inset)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
