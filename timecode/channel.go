package timecode

/*------------------------------------------------------------------
 *
 * Purpose:	Per-channel DC tracking and hysteretic zero-crossing
 *		detection. The same tracker runs independently over left,
 *		right, and the mono sum each sample.
 *
 *---------------------------------------------------------------*/

const (
	// ZeroThreshold is the hysteresis band, in 16-bit PCM units,
	// around the tracked DC estimate that a sample must cross
	// before a zero crossing is reported.
	ZeroThreshold float32 = 128

	// SignalThreshold is the rectified signal level, in 16-bit PCM
	// units, above which the liveness gate reports "playing."
	SignalThreshold float32 = 256

	// ZeroRC is the DC-estimate low-pass time constant, in seconds.
	ZeroRC = 0.001

	// SignalRC is the signal-level low-pass time constant, in
	// seconds.
	SignalRC = 0.004

	// RefPeaksAvg is the number of recent full cycles averaged into
	// the reference level.
	RefPeaksAvg = 48

	// ValidBits is the number of consecutive matching predicted/
	// observed bits that must be exceeded before a position is
	// trusted.
	ValidBits = 24

	// MonitorDecayEvery is the sample interval at which monitor
	// pixels decay by 7/8.
	MonitorDecayEvery = 512
)

// ChannelState tracks one audio channel's DC level and zero-crossing
// state. It is reused for left, right, and the mono sum; each instance
// is independent.
type ChannelState struct {
	zero      float32
	positive  bool
	crossTick int // samples since this channel's last reported crossing
}

// Update feeds one sample through the tracker. It returns whether a
// hysteretic zero crossing was detected this sample, and the number of
// samples elapsed since the previous crossing at the moment this one
// was detected (0 if none was).
//
// The ticker is incremented, then tested and reset, then the DC
// estimate is advanced, in that order. A crossing's "samples since
// last crossing" value is handed back to the
// caller before the internal counter is zeroed, so callers that need
// the elapsed duration of the half/full cycle that just ended (the
// wave/bit state machine, for the mono channel) can use it without
// racing the reset.
func (c *ChannelState) Update(sample, alpha float32) (crossed bool, ticks int) {
	c.crossTick++

	switch {
	case sample >= c.zero+ZeroThreshold && !c.positive:
		c.positive = true
		crossed = true
	case sample < c.zero-ZeroThreshold && c.positive:
		c.positive = false
		crossed = true
	}

	if crossed {
		ticks = c.crossTick
		c.crossTick = 0
	}

	c.zero += alpha * (sample - c.zero)
	return crossed, ticks
}

// CrossingTicker returns the live count of samples since this
// channel's last reported crossing, used by the direction decision to
// compare left against right.
func (c *ChannelState) CrossingTicker() int {
	return c.crossTick
}

// Zero returns the channel's current tracked DC estimate.
func (c *ChannelState) Zero() float32 {
	return c.zero
}

// filterCoefficients derives the one-pole low-pass coefficients for
// the zero and signal trackers from the current sample rate. Called
// once per Submit so a per-block change in sample rate takes effect
// immediately rather than on the next Init/Clear.
func filterCoefficients(rate uint32) (zeroAlpha, signalAlpha float32) {
	dt := 1.0 / float64(rate)
	zeroAlpha = float32(dt / (ZeroRC + dt))
	signalAlpha = float32(dt / (SignalRC + dt))
	return zeroAlpha, signalAlpha
}
