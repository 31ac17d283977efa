package playground

import (
	"errors"
	"fmt"
)

// ErrInvalidKind is returned when a descriptor carries a kind outside the
// supported set.
var ErrInvalidKind = errors.New("playground: invalid field kind")

// DuplicateNameError reports an edit that would give two fields the same name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("playground: duplicate field name %q", e.Name)
}
