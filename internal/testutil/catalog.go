package testutil

import (
	"fmt"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// StaticCatalog serves templates from a fixed map, standing in for the
// template store in schedule and service tests.
type StaticCatalog map[string]*domain.Template

func (c StaticCatalog) ByID(id string) (*domain.Template, error) {
	if tpl, ok := c[id]; ok {
		return tpl, nil
	}
	return nil, fmt.Errorf("template %q: %w", id, domain.ErrNotFound)
}
