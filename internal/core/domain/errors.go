package domain

import (
	"errors"
	"fmt"
	"syscall"
)

// UsageError is malformed command-line input, detected before any filesystem call
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// IoError is a failure to open the target or read its metadata
type IoError struct {
	Op   string // "open" or "stat"
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// AttributeRemovalError is a failed removexattr call
type AttributeRemovalError struct {
	Name  string // namespaced
	Path  string
	Errno syscall.Errno
	Err   error
}

// NewAttributeRemovalError extracts the OS error code from err, if any
func NewAttributeRemovalError(name, path string, err error) *AttributeRemovalError {
	e := &AttributeRemovalError{Name: name, Path: path, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.Errno = errno
	}
	return e
}

// Code returns the raw OS error code, 0 if unknown
func (e *AttributeRemovalError) Code() int {
	return int(e.Errno)
}

func (e *AttributeRemovalError) Error() string {
	if e.Errno != 0 {
		return fmt.Sprintf("removexattr error: %d (%s) removing %s from %s", int(e.Errno), e.Errno.Error(), e.Name, e.Path)
	}
	return fmt.Sprintf("removexattr error: removing %s from %s: %v", e.Name, e.Path, e.Err)
}

func (e *AttributeRemovalError) Unwrap() error {
	return e.Err
}

// ErrUnsupportedPlatform is returned by adapters that need Linux
var ErrUnsupportedPlatform = errors.New("bcachefs attributes are only supported on linux")
