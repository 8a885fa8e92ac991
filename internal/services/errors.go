package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSubmission covers submissions whose structure cannot be
	// decoded at all.
	ErrMalformedSubmission = errors.New("malformed submission")

	// ErrMissingImage is returned when the submission has no image file part.
	ErrMissingImage = errors.New("image file is required")
)

// MalformedFieldError reports a field that was present but could not be
// decoded or validated, such as a tags payload that is not a JSON string
// array or an image that fails the size and type checks.
type MalformedFieldError struct {
	Field string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed %s field: %v", e.Field, e.Err)
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}

// UploadError wraps a failure from the remote image store. No record has
// been persisted when it is returned.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistError wraps a repository failure after a successful upload. The
// uploaded object stays in the remote store; the reconciler collects it
// later instead of the pipeline rolling it back.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist event: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
