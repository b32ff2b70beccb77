//go:build linux

package bcachefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Propagator asks bcachefs to re-inherit options on every entry below a
// directory. Entries the kernel reports as unchanged are not descended into.
// A failing entry is logged and skipped; the walk continues with its siblings.
type Propagator struct {
	log       logrus.FieldLogger
	reinherit func(dirfd int, name string) (bool, error)
}

func NewPropagator(log logrus.FieldLogger) *Propagator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Propagator{log: log, reinherit: reinherit}
}

// Propagate walks the directory open at fd. fd is not closed.
// Per-entry failures are joined into the returned error.
func (p *Propagator) Propagate(ctx context.Context, fd uintptr) error {
	// Readdir takes ownership of its fd, so walk a duplicate
	dup, err := unix.Dup(int(fd))
	if err != nil {
		return fmt.Errorf("failed to dup directory fd: %w", err)
	}
	return p.walk(ctx, dup, ".")
}

// walk consumes dirfd
func (p *Propagator) walk(ctx context.Context, dirfd int, rel string) error {
	dir := os.NewFile(uintptr(dirfd), rel)
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return fmt.Errorf("readdir error in %s: %w", rel, err)
	}

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := p.visit(ctx, dirfd, rel, name); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			p.log.WithError(err).WithField("entry", rel+"/"+name).Warn("skipping entry")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (p *Propagator) visit(ctx context.Context, dirfd int, rel, name string) error {
	changed, err := p.reinherit(dirfd, name)
	if err != nil {
		return fmt.Errorf("error reinheriting attrs for %s/%s: %w", rel, name, err)
	}
	if !changed {
		return nil
	}

	var st unix.Stat_t
	if err := unix.Fstatat(dirfd, name, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		return fmt.Errorf("stat error on %s/%s: %w", rel, name, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return nil
	}

	child, err := unix.Openat(dirfd, name, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("error opening %s/%s: %w", rel, name, err)
	}

	p.log.WithField("dir", rel+"/"+name).Debug("descending")
	return p.walk(ctx, child, rel+"/"+name)
}

func reinherit(dirfd int, name string) (bool, error) {
	ptr, err := unix.BytePtrFromString(name)
	if err != nil {
		return false, err
	}
	ret, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(dirfd), IocReinheritAttrs, uintptr(unsafe.Pointer(ptr)))
	if errno != 0 {
		return false, errno
	}
	return ret > 0, nil
}
