package xattr

import (
	"errors"
	"fmt"

	sysxattr "github.com/pkg/xattr"
)

// Store implements ports.XattrStore on top of the OS xattr syscalls.
// Symlinks are followed, matching removexattr(2).
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Remove deletes name from path. The returned error wraps the raw errno.
func (s *Store) Remove(path string, name string) error {
	return sysxattr.Remove(path, name)
}

// List returns every attribute name on path
func (s *Store) List(path string) ([]string, error) {
	names, err := sysxattr.List(path)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Get returns the value of name on path
func (s *Store) Get(path string, name string) ([]byte, error) {
	return sysxattr.Get(path, name)
}

// IsNotFound reports whether err means the attribute was not set
func IsNotFound(err error) bool {
	return errors.Is(err, sysxattr.ENOATTR)
}

// Supported reports whether path's filesystem accepts xattr calls at all
func Supported(path string) error {
	if _, err := sysxattr.List(path); err != nil {
		var xerr *sysxattr.Error
		if errors.As(err, &xerr) {
			return fmt.Errorf("extended attributes unavailable on %s: %w", path, xerr.Err)
		}
		return err
	}
	return nil
}
