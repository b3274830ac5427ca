package coursepointer

import (
	"errors"
	"fmt"

	"github.com/mshroyer/coursepointer-go/internal/course"
	"github.com/mshroyer/coursepointer-go/internal/geomodel"
)

// ErrorKind classifies an Error into one of the stable, user-facing kinds
// from spec.md §7.
type ErrorKind int

const (
	InvalidCoordinate ErrorKind = iota
	EmptyCourse
	DegenerateSegment
	GnomonicOutOfRange
	EncodeTooLarge
	Cancelled
	Internal
)

var kindNames = [...]string{
	"InvalidCoordinate",
	"EmptyCourse",
	"DegenerateSegment",
	"GnomonicOutOfRange",
	"EncodeTooLarge",
	"Cancelled",
	"Internal",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Unknown"
}

// Error is the classified error type the package returns, wrapping the
// kind alongside the underlying cause. It satisfies errors.Is against
// another *Error with the same Kind, so callers can write
// errors.Is(err, coursepointer.ErrEmptyCourse).
type Error struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("coursepointer: %s: %v", e.msg, e.cause)
	}

	return "coursepointer: " + e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, cause: cause}
}

// Sentinel values for errors.Is comparisons; their cause fields are
// always nil, so only Kind participates in the comparison.
var (
	ErrInvalidCoordinate  = newError(InvalidCoordinate, "invalid coordinate", nil)
	ErrEmptyCourse        = newError(EmptyCourse, "fewer than two distinct route points", nil)
	ErrDegenerateSegment  = newError(DegenerateSegment, "degenerate segment", nil)
	ErrGnomonicOutOfRange = newError(GnomonicOutOfRange, "waypoint too far from any segment to project", nil)
	ErrEncodeTooLarge     = newError(EncodeTooLarge, "field exceeds its declared storage", nil)
	ErrCancelled          = newError(Cancelled, "cancelled", nil)
	ErrInternal           = newError(Internal, "internal error", nil)
)

// classify maps an error from the lower layers onto the stable kinds from
// spec.md §7, wrapping the original error as the cause.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var cpErr *Error
	if errors.As(err, &cpErr) {
		return err
	}

	switch {
	case errors.Is(err, geomodel.ErrInvalidCoordinate):
		return newError(InvalidCoordinate, ErrInvalidCoordinate.msg, err)
	case errors.Is(err, course.ErrEmptyCourse):
		return newError(EmptyCourse, ErrEmptyCourse.msg, err)
	case errors.Is(err, course.ErrDegenerateSegment):
		return newError(DegenerateSegment, ErrDegenerateSegment.msg, err)
	case errors.Is(err, course.ErrCancelled):
		return newError(Cancelled, ErrCancelled.msg, err)
	default:
		return newError(Internal, ErrInternal.msg, err)
	}
}
