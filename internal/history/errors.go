package history

import "fmt"

// PersistError is an I/O failure opening or writing a run record.
type PersistError struct {
	Op   string // "open", "encode", "write", "sync", "archive"
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("history %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
