package tracker

import "errors"

// ErrValidation matches every rejected ledger or profile input:
// errors.Is(err, ErrValidation) holds for all sentinels below.
var ErrValidation = errors.New("validation error")

// ValidationError carries a message that is safe to show to the user.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) *ValidationError { return &ValidationError{msg: msg} }

var (
	ErrEmptyBatch          = invalid("select at least one item")
	ErrInvalidMealType     = invalid("meal type must be breakfast, lunch, dinner or snack")
	ErrInvalidDuration     = invalid("duration must be greater than 0")
	ErrInvalidProfile      = invalid("body weight must be greater than 0")
	ErrIndexOutOfRange     = invalid("entry index out of range")
	ErrEntryNotFound       = invalid("entry not found")
	ErrInvalidWater        = invalid("water count out of range")
	ErrUnknownBodyField    = invalid("body field must be weight or height")
	ErrBodyValueOutOfRange = invalid("body value out of range")
)

// ErrPersistence wraps snapshot write failures. They never fail the
// operation that triggered them; in-memory state stays authoritative.
var ErrPersistence = errors.New("snapshot persistence failed")

// ErrSnapshotNotFound is returned by a SnapshotStore with nothing saved yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")
