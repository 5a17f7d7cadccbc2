package markup

import (
	"fmt"
)

// Mode selects how constructs a conventional engine would reject or discard
// are materialized.
type Mode int

const (
	// ModeShow renders the construct as a visible preformatted block. This
	// is the default: authors debugging their markup see what went wrong.
	ModeShow Mode = iota

	// ModeHide drops the construct from output.
	ModeHide

	// ModeStrict restores conventional engine behavior: unknown directives
	// are hard errors, comments are stripped.
	ModeStrict
)

// String implements fmt.Stringer for diagnostics and config round-trips.
func (m Mode) String() string {
	switch m {
	case ModeShow:
		return "show"
	case ModeHide:
		return "hide"
	case ModeStrict:
		return "strict"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "show":
		return ModeShow, nil
	case "hide":
		return ModeHide, nil
	case "strict":
		return ModeStrict, nil
	}
	return ModeShow, fmt.Errorf("invalid display mode %q (must be show, hide, or strict)", s)
}

// Policy holds the static halves of the display policy. The dynamic half is
// the in-document "github display on/off" comment marker, which gates
// ModeShow for the remainder of a document.
type Policy struct {
	Directives Mode // unknown and security-disabled directives
	Comments   Mode // comment block bodies
}

// StrictPolicy returns the policy matching conventional engine behavior.
func StrictPolicy() Policy {
	return Policy{Directives: ModeStrict, Comments: ModeStrict}
}

// Report levels follow the docutils convention.
const (
	ReportInfo = iota + 1
	ReportWarning
	ReportError
	ReportSevere
	ReportNone
)

// Settings is the engine configuration bundle. It is fixed per Converter;
// the platform defaults come from DefaultSettings.
type Settings struct {
	// CloakEmailAddresses obfuscates mailto links when set. The platform
	// leaves it off.
	CloakEmailAddresses bool

	// FileInsertion allows directives to read arbitrary files. Always off
	// for hosted rendering; the include directive then takes the
	// unknown-directive display path.
	FileInsertion bool

	// RawEnabled permits the raw passthrough directive (body content only;
	// file insertion is governed separately).
	RawEnabled bool

	// StripComments is the engine-level comment policy. The display-policy
	// override supersedes it except under Policy.Comments == ModeStrict.
	StripComments bool

	// DoctitleTransform promotes a lone top-level section title to
	// document title.
	DoctitleTransform bool

	// InitialHeaderLevel is the heading level of depth-1 sections.
	InitialHeaderLevel int

	// ReportLevel suppresses parse diagnostics below the given severity.
	// The platform uses ReportNone: diagnostics never reach the output.
	ReportLevel int

	// SyntaxHighlight is the engine highlight mode. The platform uses
	// "none": languages are tracked and emitted as lang attributes, and
	// any actual highlighting happens downstream.
	SyntaxHighlight string

	// MathOutput selects math rendering. "latex" emits math bodies as
	// literal TeX in marked preformatted blocks.
	MathOutput string

	// FieldNameLimit is the longest field name rendered inline in a field
	// list table; longer names take a spanned row of their own.
	FieldNameLimit int

	// TableStyle is appended to the fixed "docutils" class on tables.
	TableStyle string
}

// DefaultSettings returns the fixed platform bundle.
func DefaultSettings() Settings {
	return Settings{
		CloakEmailAddresses: false,
		FileInsertion:       false,
		RawEnabled:          true,
		StripComments:       true,
		DoctitleTransform:   true,
		InitialHeaderLevel:  2,
		ReportLevel:         ReportNone,
		SyntaxHighlight:     "none",
		MathOutput:          "latex",
		FieldNameLimit:      50,
	}
}

// Validate checks settings ranges.
func (s Settings) Validate() error {
	if s.InitialHeaderLevel < 1 || s.InitialHeaderLevel > 6 {
		return fmt.Errorf("%w: %d (must be 1-6)", ErrInvalidHeaderLevel, s.InitialHeaderLevel)
	}
	if s.ReportLevel < ReportInfo || s.ReportLevel > ReportNone {
		return fmt.Errorf("%w: %d (must be 1-5)", ErrInvalidReportLevel, s.ReportLevel)
	}
	return nil
}

// Input contains conversion parameters.
type Input struct {
	Source string // ReST content (required)
}
