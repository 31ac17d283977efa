package fieldlist

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange reports an index outside [0, len(list)).
var ErrIndexOutOfRange = errors.New("fieldlist: index out of range")

// IndexError describes which operation received a bad index.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("fieldlist: %s index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
