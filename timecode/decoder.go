package timecode

/*------------------------------------------------------------------
 *
 * Purpose:	The decoder facade: owns every piece of per-stream state
 *		and implements the hot path (Submit) plus the read
 *		operations (GetPosition, GetPitch, GetAlive).
 *
 * Description:	Submit runs the wave/bit state machine once per mono
 *		zero crossing: it classifies the crossing as delimiting a
 *		half cycle or a full cycle, emits one bit per full cycle,
 *		advances the predicted timecode through the LFSR, and
 *		resolves direction from which of the two channels crossed
 *		least recently.
 *
 *---------------------------------------------------------------*/

import "math"

// Decoder holds all state for one stereo PCM stream bound to one
// timecode variant. It is single-owner and not safe for concurrent
// use; callers sharing a Decoder across goroutines must serialize
// externally.
type Decoder struct {
	handle *Handle

	left, right, mono ChannelState

	forwards bool

	wavePeak, halfPeak float32
	refLevel           float32 // -1 until the first full cycle bootstraps it
	signalLevel        float32

	crossings   int32
	pitchTicker int64

	bitstream, timecode uint32
	validCounter        int
	timecodeTicker      int64

	rate                   uint32
	zeroAlpha, signalAlpha float32

	monitor     *Monitor
	bitObserver BitObserver
}

// NewDecoder constructs a Decoder bound to handle, ready for Submit.
func NewDecoder(handle *Handle) *Decoder {
	d := &Decoder{}
	d.Init(handle)
	return d
}

// Init (re)binds the decoder to handle and resets all per-stream
// state, discarding any monitor grid or bit observer that was
// attached.
func (d *Decoder) Init(handle *Handle) {
	*d = Decoder{handle: handle, refLevel: -1}
}

// Clear resets the decoder's accumulated tracking state - as if
// starting from the beginning of a fresh stream - while keeping the
// bound variant, monitor grid, and bit observer attached. Use this for
// a track change on an already-open stream; use Init to rebind to a
// different variant entirely.
func (d *Decoder) Clear() {
	handle, monitor, obs := d.handle, d.monitor, d.bitObserver
	*d = Decoder{handle: handle, refLevel: -1, monitor: monitor, bitObserver: obs}
}

// Handle returns the variant handle the decoder is bound to.
func (d *Decoder) Handle() *Handle { return d.handle }

// Submit is the decoder's hot path: it iterates samples in
// interleaved stereo order (pcm[2i] = left, pcm[2i+1] = right),
// recomputing filter coefficients for rate and running the channel
// trackers and wave/bit state machine on each one. Complexity is
// strictly O(len(pcm)); Submit allocates nothing.
//
// Splitting one logical buffer across two Submit calls with the same
// rate produces identical emitted bits and identical final state to
// one call with the whole buffer, because all state lives in the
// Decoder, not on the call stack.
func (d *Decoder) Submit(pcm []int16, rate uint32) error {
	if len(pcm)%2 != 0 {
		return errOddPCMLength
	}

	d.rate = rate
	d.zeroAlpha, d.signalAlpha = filterCoefficients(rate)

	for i := 0; i+1 < len(pcm); i += 2 {
		left := float32(pcm[i])
		right := float32(pcm[i+1])

		d.left.Update(left, d.zeroAlpha)
		d.right.Update(right, d.zeroAlpha)

		mono := left + right
		crossed, ticksSinceLast := d.mono.Update(mono, d.zeroAlpha)

		d.stepWaveBit(mono, crossed, ticksSinceLast)

		if d.monitor != nil {
			d.monitor.plot(left, right, d.refLevel)
		}
	}

	return nil
}

// stepWaveBit runs the per-sample continuous updates and, on a mono
// crossing, the half/full cycle classification, bit emission, and
// direction decision.
func (d *Decoder) stepWaveBit(g float32, crossed bool, ticksSinceLast int) {
	deviation := absf32(g - d.mono.Zero())
	if deviation > d.wavePeak {
		d.wavePeak = deviation
	}
	d.signalLevel += d.signalAlpha * (deviation - d.signalLevel)
	d.timecodeTicker++

	if !crossed {
		return
	}

	negative := d.handle.Polarity() == PolarityNegative
	halfCycle := d.mono.positive == (negative != d.forwards)

	if halfCycle {
		d.halfPeak = d.wavePeak
	} else {
		d.emitBit()
	}

	// Direction decision runs on every crossing, half or full: play
	// is forwards when the left channel's last crossing is older than
	// the right's, which is the case when the right channel leads the
	// left by a quarter cycle (as cmd/tcgen synthesizes forward play).
	d.forwards = d.left.CrossingTicker() > d.right.CrossingTicker()
	if d.forwards {
		d.crossings++
	} else {
		d.crossings--
	}
	d.pitchTicker += int64(ticksSinceLast)
	d.wavePeak = 0
}

// emitBit runs the amplitude comparison for the cycle that just
// finished, advances bitstream/timecode through the LFSR in the
// current direction, and adapts the reference level.
func (d *Decoder) emitBit() {
	sum := d.halfPeak + d.wavePeak

	var b byte
	switch {
	case d.refLevel == -1:
		// Bootstrap: no reference yet, so this bit is discarded -
		// valid_counter cannot exceed ValidBits this early anyway.
	case sum > d.refLevel:
		b = 1
	}

	if d.bitObserver != nil {
		d.bitObserver(b)
	}

	bits := d.handle.Bits()
	if d.forwards {
		d.timecode = d.handle.Forward(d.timecode)
		d.bitstream = (d.bitstream >> 1) | (uint32(b) << (bits - 1))
	} else {
		d.timecode = d.handle.Reverse(d.timecode)
		d.bitstream = ((d.bitstream << 1) & d.handle.def.Mask()) | uint32(b)
	}

	if d.timecode == d.bitstream {
		d.validCounter++
	} else {
		d.timecode = d.bitstream
		d.validCounter = 0
	}
	d.timecodeTicker = 0

	if d.refLevel == -1 {
		d.refLevel = sum
	} else {
		d.refLevel = (d.refLevel*(RefPeaksAvg-1) + sum) / RefPeaksAvg
	}
}

// GetPosition resolves the current bitstream to an absolute cycle
// index, returning ok=false until more than ValidBits consecutive
// predicted/observed bits have matched, or if the resolved bitstream somehow
// isn't a recorded lookup state. secondsSinceRead is how long ago, in
// seconds, the returned bitstream was last updated.
func (d *Decoder) GetPosition() (cycle int, secondsSinceRead float32, ok bool) {
	if d.validCounter <= ValidBits {
		return 0, 0, false
	}

	cycle, found := d.handle.Lookup(d.bitstream)
	if !found {
		return 0, 0, false
	}

	if d.rate > 0 {
		secondsSinceRead = float32(d.timecodeTicker) / float32(d.rate)
	}
	return cycle, secondsSinceRead, true
}

// GetPitch returns the fractional playback speed relative to nominal
// (1.0 = nominal, negative = reverse), resetting the pitch
// accumulators. ok is false when the net signed crossing count since
// the last call is zero: no crossings at all, or as many reverse as
// forward ones.
func (d *Decoder) GetPitch() (pitch float32, ok bool) {
	if d.crossings == 0 {
		return 0, false
	}

	resolution := float32(d.handle.Resolution())
	pitch = float32(d.rate) * float32(d.crossings) / (float32(d.pitchTicker) * resolution * 2)

	d.crossings = 0
	d.pitchTicker = 0
	return pitch, true
}

// GetAlive reports whether the rectified mono signal level is above
// the liveness threshold - a cheap "is a record playing at all" gate.
func (d *Decoder) GetAlive() bool {
	return d.signalLevel >= SignalThreshold
}

// GetSafe returns the bound variant's safe-cycle boundary.
func (d *Decoder) GetSafe() int { return d.handle.Safe() }

// GetResolution returns the bound variant's wave cycles per second at
// nominal speed.
func (d *Decoder) GetResolution() uint32 { return d.handle.Resolution() }

func absf32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
