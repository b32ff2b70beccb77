package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kamal-hamza/bcattr/internal/core/domain"
	"github.com/kamal-hamza/bcattr/internal/core/ports"
)

type InspectService struct {
	store ports.XattrStore
}

func NewInspectService(store ports.XattrStore) *InspectService {
	return &InspectService{store: store}
}

// List returns the bcachefs options set on path, both explicit and inherited
func (s *InspectService) List(ctx context.Context, path string) ([]domain.Attribute, error) {
	if err := domain.ValidatePath(path); err != nil {
		return nil, err
	}

	names, err := s.store.List(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes on %s: %w", path, err)
	}

	var attrs []domain.Attribute
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		inherited := strings.HasPrefix(name, domain.EffectiveNamespace+".")
		if !inherited && !strings.HasPrefix(name, domain.Namespace+".") {
			continue
		}

		value, err := s.store.Get(path, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s on %s: %w", name, path, err)
		}
		attrs = append(attrs, domain.Attribute{Name: name, Value: value, Inherited: inherited})
	}

	sort.Slice(attrs, func(i, j int) bool {
		if attrs[i].BareName() != attrs[j].BareName() {
			return attrs[i].BareName() < attrs[j].BareName()
		}
		// explicit before inherited
		return !attrs[i].Inherited && attrs[j].Inherited
	})

	return attrs, nil
}
