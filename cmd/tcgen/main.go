/*------------------------------------------------------------------
 *
 * Purpose:	Synthesize a stereo PCM WAV file encoding a chosen
 *		timecode variant's LFSR bitstream from its seed - the
 *		inverse of tcdecode, for producing reference timecode
 *		audio without a pressed disc. Builds up a PCM buffer sample
 *		by sample from a simple oscillator model driven by the bits
 *		to send.
 *
 *---------------------------------------------------------------*/

package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/doismellburning/timecode/internal/wavfile"
	"github.com/doismellburning/timecode/timecode"
	"github.com/doismellburning/timecode/timecode/tclog"
	"github.com/spf13/pflag"
)

func main() {
	variant := pflag.StringP("variant", "v", "serato_2a", "Timecode variant to synthesize.")
	rate := pflag.UintP("rate", "r", 44100, "Output sample rate, Hz.")
	cycles := pflag.IntP("cycles", "c", 0, "Number of wave cycles to generate. 0 generates from start-cycle to the end of the variant's Length.")
	startCycle := pflag.IntP("start-cycle", "s", 0, "Cycle index to start from (seeks the LFSR that many steps from seed).")
	out := pflag.StringP("out", "o", "timecode.wav", "Output WAV path.")
	variantConfig := pflag.String("variant-config", "", "Optional YAML file of additional/override variant definitions.")
	logLevel := pflag.String("log-level", "info", "Log level: debug, info, warn, error.")
	listVariants := pflag.Bool("list-variants", false, "Print known variant names and exit.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tcgen - synthesize timecode control audio.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tcgen [options]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := tclog.New(*logLevel)

	if *variantConfig != "" {
		if err := timecode.LoadVariantConfig(*variantConfig); err != nil {
			logger.Fatal("loading variant config", "err", err)
		}
	}

	if *listVariants {
		fmt.Println(strings.Join(timecode.KnownVariants(), "\n"))
		return
	}

	h, err := timecode.BuildLookup(*variant)
	if err != nil {
		logger.Fatal("building variant lookup", "variant", *variant, "err", err)
	}

	n := *cycles
	if n <= 0 {
		n = h.Length() - *startCycle
	}
	if n <= 0 {
		logger.Fatal("nothing to generate", "start_cycle", *startCycle, "length", h.Length())
	}

	samples := synthesize(h, uint32(*rate), *startCycle, n)

	if err := wavfile.Write(*out, wavfile.Format{SampleRate: uint32(*rate), Channels: 2}, samples); err != nil {
		logger.Fatal("writing wav", "path", *out, "err", err)
	}

	logger.Info("wrote timecode audio", "path", *out, "variant", h.Name(), "cycles", n, "rate", *rate)
}

// synthesize builds n full-cycle worths of interleaved stereo PCM
// starting at cycle index startCycle, encoding each LFSR output bit as
// one full sine-like cycle, the second half's amplitude carrying the
// bit value relative to a fixed reference half. Stereo channels are
// offset by a quarter cycle so a decoder's direction logic reads this
// as forward playback.
func synthesize(h *timecode.Handle, rate uint32, startCycle, n int) []int16 {
	resolution := float64(h.Resolution())
	samplesPerCycle := int(float64(rate) / resolution)
	if samplesPerCycle < 4 {
		samplesPerCycle = 4
	}

	const (
		baseAmplitude  = 8000
		boostAmplitude = 16000
		quarterShift   = 0.25 // right channel leads left by a quarter cycle
	)

	state := h.Seed()
	for i := 0; i < startCycle; i++ {
		state = h.Forward(state)
	}

	pcm := make([]int16, 0, 2*n*samplesPerCycle)
	for cycle := 0; cycle < n; cycle++ {
		bit := nextBit(h, &state)

		amplitude := baseAmplitude
		if bit == 1 {
			amplitude = boostAmplitude
		}

		for s := 0; s < samplesPerCycle; s++ {
			phase := float64(s) / float64(samplesPerCycle)
			left := oscillate(phase, baseAmplitude, amplitude)
			right := oscillate(phase+quarterShift, baseAmplitude, amplitude)
			pcm = append(pcm, int16(left), int16(right))
		}
	}
	return pcm
}

// nextBit mirrors the decoder's own forward bit-decision direction: the
// same parity-over-taps value used inside the forward LFSR step is what
// the original encoding hardware/software would have amplitude-coded,
// so the generated cycle's bit and the state advance are the same
// operation.
func nextBit(h *timecode.Handle, state *uint32) byte {
	next := h.Forward(*state)
	bit := byte(next >> (h.Bits() - 1))
	*state = next
	return bit
}

// oscillate returns one sample of a cycle split into two halves: the
// first half (phase in [0, 0.5)) always swings at refAmplitude, the
// second half at amplitude - matching the decoder's half/full cycle
// amplitude-comparison bit decision.
func oscillate(phase float64, refAmplitude, amplitude int) float64 {
	phase = math.Mod(phase, 1.0)
	if phase < 0 {
		phase++
	}

	if phase < 0.5 {
		return float64(refAmplitude) * math.Sin(2*math.Pi*phase)
	}
	return float64(amplitude) * math.Sin(2*math.Pi*phase)
}
