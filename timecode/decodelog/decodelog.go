// Package decodelog writes one CSV row per resolved decode event. It
// is deliberately outside the core timecode package: log-file I/O is
// an external collaborator, not part of the decoder's own state.
package decodelog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Logger appends decode events to a CSV file whose name is derived
// from a strftime pattern, reopened whenever the formatted name
// changes, giving daily (or whatever the pattern specifies) file
// rotation for free.
type Logger struct {
	dir     string
	pattern string

	openName string
	file     *os.File
	writer   *csv.Writer
}

// New builds a Logger that writes files under dir named by pattern
// (an strftime layout, e.g. "timecode-%Y%m%d.csv"). Use "." for the
// current directory.
func New(dir, pattern string) (*Logger, error) {
	if _, err := strftime.Format(pattern, time.Now()); err != nil {
		return nil, fmt.Errorf("decodelog: invalid pattern %q: %w", pattern, err)
	}
	return &Logger{dir: dir, pattern: pattern}, nil
}

// Write appends one row: wall-clock time, resolved cycle, pitch, and
// whether the signal was alive at the moment of the read.
func (l *Logger) Write(at time.Time, cycle int, pitch float32, alive bool) error {
	if err := l.rotate(at); err != nil {
		return err
	}

	row := []string{
		at.Format(time.RFC3339Nano),
		fmt.Sprintf("%d", cycle),
		fmt.Sprintf("%.4f", pitch),
		fmt.Sprintf("%t", alive),
	}
	if err := l.writer.Write(row); err != nil {
		return fmt.Errorf("decodelog: write row: %w", err)
	}
	l.writer.Flush()
	return l.writer.Error()
}

// rotate opens a new file when the formatted name for "at" differs
// from the currently open one, writing a header row for each new file.
func (l *Logger) rotate(at time.Time) error {
	name, err := strftime.Format(l.pattern, at)
	if err != nil {
		return fmt.Errorf("decodelog: format pattern %q: %w", l.pattern, err)
	}
	if name == l.openName && l.file != nil {
		return nil
	}

	if l.file != nil {
		l.writer.Flush()
		l.file.Close()
	}

	path := filepath.Join(l.dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("decodelog: open %s: %w", path, err)
	}

	l.file = f
	l.writer = csv.NewWriter(f)
	l.openName = name

	if info, statErr := f.Stat(); statErr == nil && info.Size() == 0 {
		_ = l.writer.Write([]string{"time", "cycle", "pitch", "alive"})
		l.writer.Flush()
	}
	return nil
}

// Close flushes and closes the currently open file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.writer.Flush()
	err := l.file.Close()
	l.file = nil
	return err
}
