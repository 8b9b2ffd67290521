package viewport

// Controller tracks focus inside an ordered list and the row of the
// visible window the focused item is drawn on. It knows nothing about what
// the items are; callers pass the list length and window height with every
// call.
type Controller struct {
	Focus  int // index into the list
	Offset int // window row of the focused item
}

// Shift moves focus and offset by the same delta. Deltas larger than the
// list (for example ±len) land on the first or last item.
func (c *Controller) Shift(delta, length, height int) {
	c.apply(c.Focus+delta, c.Offset+delta, length, height)
}

// MoveTo focuses an absolute index, scrolling as if shifted there.
func (c *Controller) MoveTo(target, length, height int) {
	delta := target - c.Focus
	c.apply(target, c.Offset+delta, length, height)
}

// Reset focuses index with the window scrolled as little as possible, used
// when a different list is swapped in.
func (c *Controller) Reset(index, length, height int) {
	c.apply(index, index, length, height)
}

// Fit re-clamps the current position after the list or window changed size.
func (c *Controller) Fit(length, height int) {
	c.apply(c.Focus, c.Offset, length, height)
}

// Top is the index drawn on the first window row.
func (c Controller) Top() int {
	return c.Focus - c.Offset
}

// Window returns the half-open index range currently visible.
func (c Controller) Window(length, height int) (start, end int) {
	start = c.Top()
	end = start + height
	if end > length {
		end = length
	}
	return start, end
}

// Click maps a window row to a list index. Clicking the focused row
// reports activate instead of a move.
func (c Controller) Click(row int) (index int, activate bool) {
	if row == c.Offset {
		return c.Focus, true
	}
	return c.Top() + row, false
}

func (c *Controller) apply(focus, offset, length, height int) {
	if length < 1 {
		length = 1
	}
	if height < 1 {
		height = 1
	}

	focus = clamp(focus, 0, length-1)
	offset = clamp(offset, 0, height-1)

	// the first visible row can't be above the list start
	if offset > focus {
		offset = focus
	}
	// nor leave blank rows under the end of a list that fills the window
	if length >= height {
		if low := focus - (length - height); offset < low {
			offset = low
		}
	} else {
		offset = focus
	}

	c.Focus = focus
	c.Offset = offset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
