package leave

import "fmt"

// StorageWriteError reports a failed write transaction. Nothing from the
// failed call was persisted.
type StorageWriteError struct {
	Op  string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
