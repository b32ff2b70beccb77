//go:build linux

package bcachefs

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Probe detects bcachefs mounts through statfs(2)
type Probe struct{}

func NewProbe() *Probe {
	return &Probe{}
}

func (p *Probe) IsBcachefs(path string) (bool, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return false, fmt.Errorf("statfs %s: %w", path, err)
	}
	return uint32(st.Type) == SuperMagic, nil
}
