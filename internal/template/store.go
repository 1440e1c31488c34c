package template

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// Store is an immutable catalog of templates loaded from a directory of
// JSON files. A template that fails integrity validation is excluded from
// the usable set and its error retained; loading never crashes the store.
type Store struct {
	dir       string
	templates []*domain.Template
	byID      map[string]*domain.Template
	problems  []error
}

// NewStore creates a catalog rooted at the given directory. Call Load
// before use.
func NewStore(dir string) *Store {
	return &Store{dir: dir, byID: make(map[string]*domain.Template)}
}

// Load reads every *.json template in the directory. Malformed files and
// templates failing validation are excluded and recorded as problems.
// The returned error covers directory-level failures only.
func (s *Store) Load() error {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	s.templates = nil
	s.problems = nil
	s.byID = make(map[string]*domain.Template)

	for _, file := range files {
		schema, err := LoadSchema(file)
		if err != nil {
			s.problems = append(s.problems, fmt.Errorf("%s: %w", filepath.Base(file), err))
			continue
		}

		tpl, err := Compile(schema)
		if err != nil {
			s.problems = append(s.problems, err)
			continue
		}

		if _, dup := s.byID[tpl.ID]; dup {
			s.problems = append(s.problems, &domain.TemplateIntegrityError{
				TemplateID: tpl.ID,
				Reason:     "duplicate template id in catalog",
			})
			continue
		}

		s.templates = append(s.templates, tpl)
		s.byID[tpl.ID] = tpl
	}

	return nil
}

// List returns the usable templates in load order.
func (s *Store) List() []*domain.Template {
	return s.templates
}

// ByID resolves a template by ID or, failing that, by display name
// (case-insensitive).
func (s *Store) ByID(id string) (*domain.Template, error) {
	if tpl, ok := s.byID[id]; ok {
		return tpl, nil
	}
	for _, tpl := range s.templates {
		if strings.EqualFold(tpl.Name, id) {
			return tpl, nil
		}
	}
	return nil, fmt.Errorf("template %q: %w", id, domain.ErrNotFound)
}

// Problems returns the integrity errors recorded by the last Load.
func (s *Store) Problems() []error {
	return s.problems
}
