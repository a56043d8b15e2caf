package filestore

import (
	"errors"
	"fmt"
)

// StorageError represents a failure to read or durably write the store file.
//
// A StorageError from Write guarantees the prior stored state is unchanged;
// partial writes are never left in place.
type StorageError struct {
	// Code identifies the error category.
	Code StorageErrorCode

	// Path is the store file involved.
	Path string

	// Err is the underlying cause.
	Err error
}

// StorageErrorCode categorizes storage errors.
type StorageErrorCode string

const (
	// ErrCodeReadFailed indicates the store file could not be read.
	ErrCodeReadFailed StorageErrorCode = "READ_FAILED"

	// ErrCodeWriteFailed indicates the snapshot could not be durably written.
	ErrCodeWriteFailed StorageErrorCode = "WRITE_FAILED"

	// ErrCodeDecodeFailed indicates the store file exists but is not a
	// valid snapshot.
	ErrCodeDecodeFailed StorageErrorCode = "DECODE_FAILED"
)

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError returns true if the error is a StorageError.
// Uses errors.As to handle wrapped errors.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
