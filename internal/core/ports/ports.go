package ports

import (
	"context"
	"io/fs"
)

// Handle is an open target. *os.File satisfies it.
type Handle interface {
	// Fd returns the underlying file descriptor
	Fd() uintptr

	// Stat returns the metadata used to resolve the target kind
	Stat() (fs.FileInfo, error)

	Close() error
}

// TargetOpener defines the port for opening a target read-only
type TargetOpener interface {
	Open(path string) (Handle, error)
}

// XattrStore defines the port for extended attribute storage
type XattrStore interface {
	// Remove deletes a fully namespaced attribute from path
	Remove(path string, name string) error

	// List returns all attribute names set on path
	List(path string) ([]string, error)

	// Get returns the value of one attribute
	Get(path string, name string) ([]byte, error)
}

// Propagator defines the port for the filesystem's recursive re-inherit
type Propagator interface {
	// Propagate re-applies inherited options below the directory open at fd
	Propagate(ctx context.Context, fd uintptr) error
}

// FilesystemProbe reports whether a path is on a bcachefs mount
type FilesystemProbe interface {
	IsBcachefs(path string) (bool, error)
}

// Reporter receives human-readable progress from the executor
type Reporter interface {
	// Removing is called once per attribute, before the removal is attempted
	Removing(name string, path string)

	// Propagating is called before the re-inherit walk starts
	Propagating(path string)

	// PropagationFailed is called when the walk returns an error
	PropagationFailed(path string, err error)
}
