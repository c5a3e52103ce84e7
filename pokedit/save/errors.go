package save

import "errors"

// Load errors. A file that fails any of these checks never produces a
// partially constructed Game.
var (
	ErrTooSmall         = errors.New("save file smaller than minimum size")
	ErrInvalidSectionID = errors.New("save file contains invalid section id")
	ErrMissingSection   = errors.New("save file missing section")
	ErrBadChecksum      = errors.New("section has an invalid checksum")
	ErrBadSignature     = errors.New("section has an invalid signature")
	ErrMismatchedIndex  = errors.New("sections contain mismatching save indices")
	ErrInvalidData      = errors.New("save file contains invalid data")
	ErrNotInVersion     = errors.New("datum not available in this game version")
)
