package timecode

import "runtime/debug"

// Version is set at build time via
// -ldflags "-X 'github.com/doismellburning/timecode/timecode.Version=X'".
var Version string

// BuildInfo returns the module version: the build-time override if
// set, otherwise whatever runtime/debug can recover from the binary's
// embedded build info.
func BuildInfo() string {
	if Version != "" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(unknown)"
}
