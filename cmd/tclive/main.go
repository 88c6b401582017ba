/*------------------------------------------------------------------
 *
 * Purpose:	Live capture front end: pull stereo PCM straight from the
 *		sound card via github.com/gordonklaus/portaudio and feed
 *		it through a timecode.Decoder in real time, the live
 *		counterpart to tcdecode's file-based harness.
 *
 *---------------------------------------------------------------*/

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/doismellburning/timecode/timecode"
	"github.com/doismellburning/timecode/timecode/decodelog"
	"github.com/doismellburning/timecode/timecode/tclog"
	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"
)

func main() {
	variant := pflag.StringP("variant", "v", "serato_2a", "Timecode variant to decode against.")
	variantConfig := pflag.String("variant-config", "", "Optional YAML file of additional/override variant definitions.")
	rate := pflag.UintP("rate", "r", 44100, "Capture sample rate, Hz.")
	framesPerBuffer := pflag.IntP("frames", "f", 1024, "Stereo sample pairs captured per buffer.")
	logLevel := pflag.String("log-level", "info", "Log level: debug, info, warn, error.")
	logDir := pflag.String("log-dir", "", "Directory to write a CSV decode event log. Empty disables the log.")
	logPattern := pflag.String("log-pattern", "tclive-%Y%m%d.csv", "strftime pattern for the decode log file name.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tclive - decode timecode control audio from the default audio input device.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tclive [options]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := tclog.New(*logLevel)

	if *variantConfig != "" {
		if err := timecode.LoadVariantConfig(*variantConfig); err != nil {
			logger.Fatal("loading variant config", "err", err)
		}
	}

	h, err := timecode.BuildLookup(*variant)
	if err != nil {
		logger.Fatal("building variant lookup", "variant", *variant, "err", err)
	}

	var dlog *decodelog.Logger
	if *logDir != "" {
		dlog, err = decodelog.New(*logDir, *logPattern)
		if err != nil {
			logger.Fatal("opening decode log", "err", err)
		}
		defer dlog.Close()
	}

	if err := portaudio.Initialize(); err != nil {
		logger.Fatal("initializing portaudio", "err", err)
	}
	defer portaudio.Terminate()

	buf := make([]int16, 2*(*framesPerBuffer))
	stream, err := portaudio.OpenDefaultStream(2, 0, float64(*rate), len(buf)/2, buf)
	if err != nil {
		logger.Fatal("opening audio input stream", "err", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		logger.Fatal("starting audio input stream", "err", err)
	}
	defer stream.Stop()

	d := timecode.NewDecoder(h)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	logger.Info("listening", "variant", h.Name(), "rate", *rate)

	for {
		select {
		case <-sigCh:
			logger.Info("shutting down")
			return
		default:
		}

		if err := stream.Read(); err != nil {
			logger.Error("reading audio input", "err", err)
			continue
		}

		if err := d.Submit(buf, uint32(*rate)); err != nil {
			logger.Error("submitting samples", "err", err)
			continue
		}

		report(d, dlog, logger)
	}
}

func report(d *timecode.Decoder, dlog *decodelog.Logger, logger *log.Logger) {
	alive := d.GetAlive()
	cycle, secondsSinceRead, ok := d.GetPosition()
	pitch, pitchOK := d.GetPitch()

	if ok {
		logger.Info("position", "cycle", cycle, "seconds_since_read", secondsSinceRead, "alive", alive)
	}
	if pitchOK {
		logger.Info("pitch", "pitch", pitch, "alive", alive)
	}

	if dlog != nil && (ok || pitchOK) {
		_ = dlog.Write(time.Now(), cycle, pitch, alive)
	}
}
