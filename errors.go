package markup

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource        = errors.New("source cannot be empty")
	ErrStrictParse        = errors.New("document rejected under strict policy")
	ErrInvalidHeaderLevel = errors.New("invalid initial header level")
	ErrInvalidReportLevel = errors.New("invalid report level")
)
