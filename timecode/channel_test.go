package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelStateDetectsHysteresis(t *testing.T) {
	var c ChannelState

	// Small wobble inside the hysteresis band must not register as a
	// crossing.
	crossed, _ := c.Update(50, 0.01)
	assert.False(t, crossed)
	crossed, _ = c.Update(-50, 0.01)
	assert.False(t, crossed)

	// A swing past +ZeroThreshold does.
	crossed, ticks := c.Update(500, 0.01)
	assert.True(t, crossed)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, c.CrossingTicker())

	// Ticker resumes counting after the reset.
	c.Update(500, 0.01)
	assert.Equal(t, 1, c.CrossingTicker())
}

func TestChannelStateDCTracksSlowly(t *testing.T) {
	var c ChannelState
	for i := 0; i < 10000; i++ {
		c.Update(1000, 0.001)
	}
	// A one-pole low-pass with small alpha should converge close to
	// the constant input without ever reaching it exactly.
	assert.InDelta(t, 1000, c.Zero(), 1)
}

func TestFilterCoefficients(t *testing.T) {
	zeroAlpha, signalAlpha := filterCoefficients(44100)
	assert.Greater(t, zeroAlpha, float32(0))
	assert.Less(t, zeroAlpha, float32(1))
	assert.Greater(t, signalAlpha, float32(0))
	assert.Less(t, signalAlpha, float32(1))
	// Signal RC is 4x zero RC, so for the same rate its alpha is
	// smaller (slower to track).
	assert.Less(t, signalAlpha, zeroAlpha)
}
