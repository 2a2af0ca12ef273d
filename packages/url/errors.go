package url

import (
	"errors"
	"fmt"
)

// ErrInvalidURL is matched by every error describing a structurally invalid URL.
var ErrInvalidURL = errors.New("invalid URL")

// InvalidURLError reports a URL field that could not be interpreted.
type InvalidURLError struct {
	Input string // the string being parsed, empty for descriptors
	Field string
	Value string
}

func (e *InvalidURLError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid URL: bad %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid URL %q: bad %s %q", e.Input, e.Field, e.Value)
}

func (e *InvalidURLError) Is(target error) bool {
	return target == ErrInvalidURL
}
