package timecode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticPCM builds n interleaved stereo samples of two sine waves at
// freq cycles per sample, right lagging left by a quarter cycle,
// loud enough to clear both the zero-crossing hysteresis band and the
// liveness threshold. It exists only to drive the decoder's per-sample
// machinery (crossings, peak tracking, signal level) through enough
// real cycles to exercise Submit end to end; it does not attempt to
// encode a specific bitstream (see decoder_bitstream_test.go for a
// generator that does).
func syntheticPCM(n int, freq float64) []int16 {
	pcm := make([]int16, 2*n)
	const amplitude = 8000
	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * freq * float64(i)
		pcm[2*i] = int16(amplitude * math.Sin(phase))
		pcm[2*i+1] = int16(amplitude * math.Sin(phase-math.Pi/2))
	}
	return pcm
}

func TestDecoderSubmitRejectsOddLength(t *testing.T) {
	h, err := BuildLookup("serato_2a")
	require.NoError(t, err)
	d := NewDecoder(h)

	err = d.Submit([]int16{1, 2, 3}, 44100)
	assert.ErrorIs(t, err, errOddPCMLength)
}

func TestDecoderSilencePCMIsNotAliveAndHasNoPitch(t *testing.T) {
	h, err := BuildLookup("serato_2a")
	require.NoError(t, err)
	d := NewDecoder(h)

	require.NoError(t, d.Submit(make([]int16, 2000), 44100))

	assert.False(t, d.GetAlive())
	_, ok := d.GetPitch()
	assert.False(t, ok)
	_, _, ok = d.GetPosition()
	assert.False(t, ok)
}

func TestDecoderLoudSignalGoesAliveAndReportsPitch(t *testing.T) {
	h, err := BuildLookup("serato_2a")
	require.NoError(t, err)
	d := NewDecoder(h)

	pcm := syntheticPCM(20000, 0.02)
	require.NoError(t, d.Submit(pcm, 44100))

	assert.True(t, d.GetAlive())
	_, ok := d.GetPitch()
	assert.True(t, ok)
}

// TestDecoderSplitSubmitMatchesSingleSubmit checks that feeding one
// buffer across many short Submit calls leaves the decoder in exactly
// the state one call over the whole buffer would, since every piece of
// working state lives on the Decoder and nothing on the call stack.
func TestDecoderSplitSubmitMatchesSingleSubmit(t *testing.T) {
	h, err := BuildLookup("traktor_a")
	require.NoError(t, err)

	pcm := syntheticPCM(5000, 0.013)

	whole := NewDecoder(h)
	require.NoError(t, whole.Submit(pcm, 48000))

	split := NewDecoder(h)
	for offset := 0; offset+1 < len(pcm); {
		chunk := 7
		if offset+chunk > len(pcm) {
			chunk = len(pcm) - offset
		}
		if chunk%2 != 0 {
			chunk--
		}
		if chunk == 0 {
			break
		}
		require.NoError(t, split.Submit(pcm[offset:offset+chunk], 48000))
		offset += chunk
	}

	assert.Equal(t, *whole, *split)
}

func TestDecoderClearKeepsHandleMonitorAndObserverButResetsTracking(t *testing.T) {
	h, err := BuildLookup("serato_2a")
	require.NoError(t, err)
	d := NewDecoder(h)
	d.MonitorInit(16)

	var observed []byte
	d.SetBitObserver(func(b byte) { observed = append(observed, b) })

	mon := d.Monitor()

	require.NoError(t, d.Submit(syntheticPCM(20000, 0.02), 44100))
	require.NotEmpty(t, observed)

	d.Clear()

	assert.Same(t, h, d.Handle())
	assert.Same(t, mon, d.Monitor())
	assert.NotNil(t, d.bitObserver)
	assert.Equal(t, float32(-1), d.refLevel)
	assert.Equal(t, 0, d.validCounter)
	assert.False(t, d.GetAlive())
}

func TestDecoderInitDropsMonitorAndObserver(t *testing.T) {
	h1, err := BuildLookup("serato_2a")
	require.NoError(t, err)
	h2, err := BuildLookup("traktor_a")
	require.NoError(t, err)

	d := NewDecoder(h1)
	d.MonitorInit(8)
	d.SetBitObserver(func(byte) {})

	d.Init(h2)

	assert.Same(t, h2, d.Handle())
	assert.Nil(t, d.Monitor())
	assert.Nil(t, d.bitObserver)
}
