package viewstate

import "errors"

// ErrStorageNotReady is recorded when storage initialization reports false.
var ErrStorageNotReady = errors.New("database initialization returned false")

// Op names a controller operation.
type Op string

const (
	OpInitialize Op = "initialize"
	OpLoad       Op = "load"
	OpAdd        Op = "add"
	OpDelete     Op = "delete"
)

var opMessages = map[Op]string{
	OpInitialize: "Failed to initialize database",
	OpLoad:       "Failed to load data",
	OpAdd:        "Failed to add item",
	OpDelete:     "Failed to delete item",
}

// OpError is the failure of one controller operation. Its Error text is what
// the UI shows.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return opMessages[e.Op] + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}
