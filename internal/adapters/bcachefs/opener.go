package bcachefs

import (
	"os"

	"github.com/kamal-hamza/bcattr/internal/core/ports"
)

// Opener opens targets read-only with os.Open
type Opener struct{}

func NewOpener() *Opener {
	return &Opener{}
}

func (o *Opener) Open(path string) (ports.Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
