package items

import "errors"

var (
	// ErrEmptyName is returned by Create before storage is touched.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrBadRow means storage returned a tuple that does not fit Row.
	ErrBadRow = errors.New("malformed row")
)

// DatabaseError marks a failure that came from the storage service, as
// opposed to a caller mistake.
type DatabaseError struct {
	Message string
	Err     error
}

func (e *DatabaseError) Error() string {
	return e.Message
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is also a *DatabaseError.
func (e *DatabaseError) Is(target error) bool {
	_, ok := target.(*DatabaseError)
	return ok
}
