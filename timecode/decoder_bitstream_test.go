package timecode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synthesizeBitstream builds n full-cycle worths of interleaved stereo
// PCM encoding h's own LFSR bitstream starting at cycle index
// startCycle, the same construction cmd/tcgen uses to produce
// reference timecode audio: each LFSR output bit becomes one cycle,
// split into two halves whose amplitudes differ according to the bit
// value, with the right channel leading or lagging the left by a
// quarter cycle depending on the direction being synthesized.
func synthesizeBitstream(h *Handle, rate uint32, startCycle, n int, forward bool) []int16 {
	resolution := float64(h.Resolution())
	samplesPerCycle := int(float64(rate) / resolution)
	if samplesPerCycle < 4 {
		samplesPerCycle = 4
	}

	const (
		baseAmplitude  = 8000
		boostAmplitude = 16000
		quarterShift   = 0.25
	)

	state := h.Seed()
	for i := 0; i < startCycle; i++ {
		state = h.Forward(state)
	}
	step := h.Forward
	if !forward {
		step = h.Reverse
	}

	shift := quarterShift
	if !forward {
		shift = -quarterShift
	}

	pcm := make([]int16, 0, 2*n*samplesPerCycle)
	for cycle := 0; cycle < n; cycle++ {
		next := step(state)
		bit := byte(next >> (h.Bits() - 1))
		state = next

		amplitude := baseAmplitude
		if bit == 1 {
			amplitude = boostAmplitude
		}

		for s := 0; s < samplesPerCycle; s++ {
			phase := float64(s) / float64(samplesPerCycle)
			left := oscillateWave(phase, baseAmplitude, amplitude)
			right := oscillateWave(phase+shift, baseAmplitude, amplitude)
			pcm = append(pcm, int16(left), int16(right))
		}
	}
	return pcm
}

func oscillateWave(phase float64, refAmplitude, amplitude int) float64 {
	phase = math.Mod(phase, 1.0)
	if phase < 0 {
		phase++
	}
	if phase < 0.5 {
		return float64(refAmplitude) * math.Sin(2*math.Pi*phase)
	}
	return float64(amplitude) * math.Sin(2*math.Pi*phase)
}

// TestDecoderResolvesSynthesizedForwardPosition feeds a synthesized
// forward bitstream through a real Decoder and checks that position
// resolves to the correct, increasing cycle index and that pitch
// settles near nominal speed.
func TestDecoderResolvesSynthesizedForwardPosition(t *testing.T) {
	h, err := BuildLookup("serato_2a")
	require.NoError(t, err)

	const rate = 44100
	const startCycle = 500
	const cyclesPerBlock = 80
	const blocks = 6

	d := NewDecoder(h)

	var lastCycle int
	var sawValid bool
	for b := 0; b < blocks; b++ {
		pcm := synthesizeBitstream(h, rate, startCycle+b*cyclesPerBlock, cyclesPerBlock, true)
		require.NoError(t, d.Submit(pcm, rate))

		cycle, _, ok := d.GetPosition()
		if !ok {
			continue
		}

		if sawValid {
			assert.Greater(t, cycle, lastCycle, "forward playback must advance the resolved cycle")
		}
		sawValid = true
		lastCycle = cycle
	}
	require.True(t, sawValid, "decoder never resolved a position from the synthesized forward stream")

	pitch, ok := d.GetPitch()
	require.True(t, ok)
	assert.InDelta(t, 1.0, pitch, 0.15)
}

// TestDecoderResolvesSynthesizedReversePosition mirrors the forward
// case, playing the same variant's bitstream backward, and expects the
// resolved cycle index to decrease and the reported pitch to be
// negative and near -1.0.
func TestDecoderResolvesSynthesizedReversePosition(t *testing.T) {
	h, err := BuildLookup("serato_2a")
	require.NoError(t, err)

	const rate = 44100
	const startCycle = 2000
	const cyclesPerBlock = 80
	const blocks = 6

	d := NewDecoder(h)

	var lastCycle int
	var sawValid bool
	for b := 0; b < blocks; b++ {
		pcm := synthesizeBitstream(h, rate, startCycle-b*cyclesPerBlock, cyclesPerBlock, false)
		require.NoError(t, d.Submit(pcm, rate))

		cycle, _, ok := d.GetPosition()
		if !ok {
			continue
		}

		if sawValid {
			assert.Less(t, cycle, lastCycle, "reverse playback must decrease the resolved cycle")
		}
		sawValid = true
		lastCycle = cycle
	}
	require.True(t, sawValid, "decoder never resolved a position from the synthesized reverse stream")

	pitch, ok := d.GetPitch()
	require.True(t, ok)
	assert.InDelta(t, -1.0, pitch, 0.15)
}

// TestDecoderResolvesSynthesizedHalfSpeedPitch synthesizes a forward
// bitstream with twice the nominal samples per cycle, submits it at the
// nominal rate (half-speed play), and checks the reported pitch settles
// near 0.5.
func TestDecoderResolvesSynthesizedHalfSpeedPitch(t *testing.T) {
	h, err := BuildLookup("serato_2a")
	require.NoError(t, err)

	const rate = 44100
	const startCycle = 500
	const cyclesPerBlock = 80
	const blocks = 6

	d := NewDecoder(h)

	halfSpeedEquivalent := uint32(rate * 2)

	for b := 0; b < blocks; b++ {
		pcm := synthesizeBitstream(h, halfSpeedEquivalent, startCycle+b*cyclesPerBlock, cyclesPerBlock, true)
		require.NoError(t, d.Submit(pcm, rate))
	}

	pitch, ok := d.GetPitch()
	require.True(t, ok)
	assert.InDelta(t, 0.5, pitch, 0.15)
}
