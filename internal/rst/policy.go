package rst

import "strings"

// Mode selects how a tolerated construct is materialized.
type Mode int

const (
	// ModeShow surfaces the construct as a visible preformatted block so
	// authors can see what the renderer could not handle.
	ModeShow Mode = iota

	// ModeHide drops the construct from output entirely.
	ModeHide

	// ModeStrict restores the conventional engine behavior: unknown
	// directives become severe parse errors, comments are stripped.
	ModeStrict
)

// Policy configures the display behavior for constructs a conventional ReST
// engine would error on or discard. The zero value shows everything, which
// is the platform default.
type Policy struct {
	Directives Mode // unknown or disabled directives
	Comments   Mode // comment block bodies
}

// displayMarker is the in-document control comment. A comment whose first
// line is exactly "github display on" or "github display off" toggles the
// per-document display flag and is never rendered.
const (
	displayMarkerScope = "github"
	displayMarkerVerb  = "display"
)

// parseDisplayMarker inspects a comment's first line for the display marker.
// It returns the new flag value and whether the line was a marker.
func parseDisplayMarker(line string) (on, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 || fields[0] != displayMarkerScope || fields[1] != displayMarkerVerb {
		return false, false
	}
	switch fields[2] {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}
