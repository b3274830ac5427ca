package course

import "errors"

// Error kinds from spec.md §7 that originate in the assembler.
var (
	ErrEmptyCourse       = errors.New("course: fewer than two distinct route points")
	ErrDegenerateSegment = errors.New("course: degenerate segment")
	ErrCancelled         = errors.New("course: cancelled")
)
