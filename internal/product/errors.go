package product

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument means the text is not JSON or its top level is
	// not an object.
	ErrMalformedDocument = errors.New("malformed product details document")

	// ErrMalformedElement means an offers or pricing phases entry is not
	// a JSON object.
	ErrMalformedElement = errors.New("malformed product details element")
)

// errNotObject is the cause recorded when valid JSON has the wrong shape.
var errNotObject = errors.New("expected a JSON object")

// ParseError describes why a product details document was rejected.
// errors.Is matches it against its Kind.
type ParseError struct {
	Kind error  // ErrMalformedDocument or ErrMalformedElement
	Path string // location of the offending element, empty for the document
	Err  error  // underlying cause
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("%v at %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ParseError) Is(target error) bool { return target == e.Kind }
func (e *ParseError) Unwrap() error        { return e.Err }
