package timecode

import (
	"errors"
	"fmt"
)

// errOddPCMLength is returned by Submit when given a PCM slice with an
// odd length - it can't be deinterleaved into complete (left, right)
// pairs.
var errOddPCMLength = errors.New("timecode: pcm slice length must be even (interleaved left/right pairs)")

// UnknownVariantError is returned by BuildLookup when the requested
// variant name is not present in the registry.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("timecode: unknown variant %q", e.Name)
}

// LFSRWrappedError is returned by BuildLookup when the configured
// cycle length exceeds the actual period of the LFSR described by the
// variant's seed and tap mask - a misconfigured variant.
type LFSRWrappedError struct {
	Name    string
	AtState uint32
	AtCycle int
}

func (e *LFSRWrappedError) Error() string {
	return fmt.Sprintf("timecode: lfsr for variant %q revisited state 0x%x after %d cycles, before reaching the configured length", e.Name, e.AtState, e.AtCycle)
}
