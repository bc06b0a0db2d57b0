package receipts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common composition failure conditions.
var (
	ErrMissingField = errors.New("receipts: required field is missing")
	ErrUnknownKind  = errors.New("receipts: unknown document kind")
	ErrRendered     = errors.New("receipts: document has already been rendered")
	ErrComposed     = errors.New("receipts: document has already been composed")
	ErrInvalidParam = errors.New("receipts: invalid parameter")
)

// FieldError reports a required attribute that was not supplied.
type FieldError struct {
	Kind  Kind   // document kind being composed
	Field string // dotted attribute path, e.g. "company.email"
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("receipts: %s requires %q", e.Kind, e.Field)
}

// Unwrap lets errors.Is match ErrMissingField.
func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// DocumentError represents an error that occurred during a specific
// operation on a document. It wraps an underlying error and includes the
// operation name for context.
type DocumentError struct {
	Op  string // operation name, e.g. "New", "line items", "Render"
	Err error  // underlying error
}

func (e *DocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("receipts.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("receipts.%s: unknown error", e.Op)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// newDocumentError creates a new DocumentError wrapping the given error with operation context.
func newDocumentError(op string, err error) *DocumentError {
	return &DocumentError{Op: op, Err: err}
}
