package jsontok

import "fmt"

// TrailingInputError reports a non-whitespace character observed after the
// root value has already completed.
type TrailingInputError struct {
	Extra string
}

func (e *TrailingInputError) Error() string {
	return fmt.Sprintf("jsontok: trailing input after root completion: %q", e.Extra)
}
