// Package errors provides standardized error handling for the xplor
// application. It defines common error types, constants, and helper functions
// for consistent error creation, wrapping, and handling across the
// application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound    = NewFileError("file not found", "", FileNotFound, nil)
	ErrFileAccess      = NewFileError("file access denied", "", FileAccessDenied, nil)
	ErrInvalidPath     = NewFileError("invalid file path", "", InvalidPath, nil)
	ErrNotADirectory   = NewFileError("not a directory", "", NotADirectory, nil)
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrResourceMissing = NewResourceError("resource missing", "", ResourceMissing, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	NotADirectory
	ReadFailed
	WatchFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	ConfigNotSet
	// Resource error kinds
	ResourceMissing
	ResourceUnreadable
	// Location error kinds
	LocationUnresolved
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to filesystem access
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// ResourceError represents errors related to bundled UI resources
// (the style file and toolbar icons)
type ResourceError struct {
	ApplicationError
	resource string
}

// NewResourceError creates a new resource error
func NewResourceError(msg string, resource string, kind ErrorKind, err error) *ResourceError {
	return &ResourceError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		resource: resource,
	}
}

// Error returns the resource error message
func (e *ResourceError) Error() string {
	if e.resource != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.resource, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.resource)
	}
	return e.ApplicationError.Error()
}

// Resource returns the resource name associated with the error
func (e *ResourceError) Resource() string {
	return e.resource
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsNotADirectory checks if the error reports a non-directory path
func IsNotADirectory(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == NotADirectory
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsResourceMissing checks if the error reports a missing UI resource
func IsResourceMissing(err error) bool {
	var resErr *ResourceError
	if errors.As(err, &resErr) {
		return resErr.Kind() == ResourceMissing
	}
	return false
}

// IsResourceUnreadable checks if the error reports an unreadable UI resource
func IsResourceUnreadable(err error) bool {
	var resErr *ResourceError
	if errors.As(err, &resErr) {
		return resErr.Kind() == ResourceUnreadable
	}
	return false
}
