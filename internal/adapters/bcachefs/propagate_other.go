//go:build !linux

package bcachefs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/bcattr/internal/core/domain"
)

type Propagator struct {
	log logrus.FieldLogger
}

func NewPropagator(log logrus.FieldLogger) *Propagator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Propagator{log: log}
}

func (p *Propagator) Propagate(ctx context.Context, fd uintptr) error {
	return domain.ErrUnsupportedPlatform
}
