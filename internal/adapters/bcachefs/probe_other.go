//go:build !linux

package bcachefs

import "github.com/kamal-hamza/bcattr/internal/core/domain"

type Probe struct{}

func NewProbe() *Probe {
	return &Probe{}
}

func (p *Probe) IsBcachefs(path string) (bool, error) {
	return false, domain.ErrUnsupportedPlatform
}
