/*------------------------------------------------------------------
 *
 * Purpose:	Offline decode harness: read 16-bit PCM from a WAV file
 *		instead of a live audio device and run it through a
 *		timecode.Decoder, printing position/pitch/liveness as it
 *		goes - a captured file run under controlled, reproducible
 *		conditions instead of needing a live signal source.
 *
 *---------------------------------------------------------------*/

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/doismellburning/timecode/internal/wavfile"
	"github.com/doismellburning/timecode/timecode"
	"github.com/doismellburning/timecode/timecode/decodelog"
	"github.com/doismellburning/timecode/timecode/tclog"
	"github.com/spf13/pflag"
)

func main() {
	variant := pflag.StringP("variant", "v", "serato_2a", "Timecode variant to decode against.")
	variantConfig := pflag.String("variant-config", "", "Optional YAML file of additional/override variant definitions.")
	chunk := pflag.IntP("chunk-samples", "n", 4096, "Stereo sample pairs submitted per Decoder.Submit call.")
	logLevel := pflag.String("log-level", "info", "Log level: debug, info, warn, error.")
	logDir := pflag.String("log-dir", "", "Directory to write a CSV decode event log. Empty disables the log.")
	logPattern := pflag.String("log-pattern", "tcdecode-%Y%m%d.csv", "strftime pattern for the decode log file name.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tcdecode - decode timecode control audio from a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tcdecode [options] input.wav\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := tclog.New(*logLevel)

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	if *variantConfig != "" {
		if err := timecode.LoadVariantConfig(*variantConfig); err != nil {
			logger.Fatal("loading variant config", "err", err)
		}
	}

	h, err := timecode.BuildLookup(*variant)
	if err != nil {
		logger.Fatal("building variant lookup", "variant", *variant, "err", err)
	}

	r, err := wavfile.Open(pflag.Arg(0))
	if err != nil {
		logger.Fatal("opening wav", "err", err)
	}
	defer r.Close()

	if r.Format.Channels != 2 {
		logger.Fatal("unsupported channel count, timecode decode needs stereo", "channels", r.Format.Channels)
	}

	var dlog *decodelog.Logger
	if *logDir != "" {
		dlog, err = decodelog.New(*logDir, *logPattern)
		if err != nil {
			logger.Fatal("opening decode log", "err", err)
		}
		defer dlog.Close()
	}

	d := timecode.NewDecoder(h)

	buf := make([]int16, 2*(*chunk))
	var totalSamples int64
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if err := d.Submit(buf[:n], r.Format.SampleRate); err != nil {
				logger.Fatal("submitting samples", "err", err)
			}
			totalSamples += int64(n / 2)
			report(d, dlog, logger)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			logger.Fatal("reading wav", "err", readErr)
		}
	}

	logger.Info("decode finished", "samples", totalSamples)
}

// report prints and (if configured) logs the decoder's current read,
// once per Submit call - a coarser cadence than per-sample, summarizing
// per audio block rather than per sample.
func report(d *timecode.Decoder, dlog *decodelog.Logger, logger *log.Logger) {
	alive := d.GetAlive()
	cycle, secondsSinceRead, ok := d.GetPosition()
	pitch, pitchOK := d.GetPitch()

	if !ok && !pitchOK {
		return
	}

	if ok {
		logger.Info("position", "cycle", cycle, "seconds_since_read", secondsSinceRead, "alive", alive)
	}
	if pitchOK {
		logger.Info("pitch", "pitch", pitch, "alive", alive)
	}

	if dlog != nil {
		_ = dlog.Write(time.Now(), cycle, pitch, alive)
	}
}
