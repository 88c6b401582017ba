package timecode

/*------------------------------------------------------------------
 *
 * Purpose:	Optional size x size byte grid visualizing the raw
 *		left/right Lissajous pattern, decaying over time. Pixel
 *		placement and decay are tracked here; actually drawing the
 *		grid to a screen is left to the caller.
 *
 *---------------------------------------------------------------*/

// Monitor is a decaying size x size byte grid. Each sample plots one
// pixel from the (left, right) pair, scaled by the decoder's current
// reference level.
type Monitor struct {
	size       int
	grid       []byte
	sinceDecay int
}

// MonitorInit allocates a size x size monitor grid for the decoder,
// replacing any existing one.
func (d *Decoder) MonitorInit(size int) {
	d.monitor = &Monitor{
		size: size,
		grid: make([]byte, size*size),
	}
}

// MonitorClear detaches the decoder's monitor grid, if any.
func (d *Decoder) MonitorClear() {
	d.monitor = nil
}

// Monitor returns the decoder's monitor grid, or nil if none is
// attached.
func (d *Decoder) Monitor() *Monitor {
	return d.monitor
}

// Size returns the grid's edge length.
func (m *Monitor) Size() int { return m.size }

// Pixel returns the decay-weighted byte value at (x, y).
func (m *Monitor) Pixel(x, y int) byte {
	return m.grid[y*m.size+x]
}

// plot maps one (left, right) sample pair into the grid and applies
// the periodic decay. refLevel <= 0 means the decoder hasn't
// bootstrapped a reference level yet, so the sample carries no usable
// scale and is skipped.
func (m *Monitor) plot(left, right, refLevel float32) {
	if refLevel > 0 {
		x := scaleToGrid(left, refLevel, m.size)
		y := scaleToGrid(right, refLevel, m.size)
		m.grid[y*m.size+x] = 255
	}

	m.sinceDecay++
	if m.sinceDecay >= MonitorDecayEvery {
		m.sinceDecay = 0
		for i, v := range m.grid {
			m.grid[i] = byte((int(v) * 7) / 8)
		}
	}
}

// scaleToGrid maps a sample in roughly [-refLevel, +refLevel] into a
// clamped [0, size) grid coordinate.
func scaleToGrid(v, refLevel float32, size int) int {
	normalized := (v/refLevel + 1) / 2
	coord := int(normalized * float32(size))
	if coord < 0 {
		return 0
	}
	if coord >= size {
		return size - 1
	}
	return coord
}
