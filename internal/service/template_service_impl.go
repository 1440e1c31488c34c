package service

import (
	"context"

	"github.com/aeobrien/deadline-calendar/internal/domain"
	"github.com/aeobrien/deadline-calendar/internal/template"
)

type templateService struct {
	store *template.Store
}

// NewTemplateService exposes the read-only template catalog.
func NewTemplateService(store *template.Store) TemplateService {
	return &templateService{store: store}
}

func (s *templateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.store.List(), nil
}

func (s *templateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	return s.store.ByID(id)
}

func (s *templateService) Problems(ctx context.Context) []error {
	return s.store.Problems()
}
