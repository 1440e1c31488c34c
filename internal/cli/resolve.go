package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// resolveProjectID accepts a full project ID, a unique ID prefix, or a
// case-insensitive title match.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Title, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveSubDeadlineID matches a full ID, a unique prefix, or a
// case-insensitive title within the project.
func resolveSubDeadlineID(p *domain.Project, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("sub-deadline ID is required")
	}

	if sub := p.SubDeadlineByID(input); sub != nil {
		return sub.ID, nil
	}
	for i := range p.SubDeadlines {
		if strings.EqualFold(p.SubDeadlines[i].Title, input) {
			return p.SubDeadlines[i].ID, nil
		}
	}

	var matches []string
	for i := range p.SubDeadlines {
		if strings.HasPrefix(p.SubDeadlines[i].ID, input) {
			matches = append(matches, p.SubDeadlines[i].ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("sub-deadline not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("sub-deadline ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTriggerID matches a full ID, a unique prefix, or a
// case-insensitive name within the project.
func resolveTriggerID(p *domain.Project, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("trigger ID is required")
	}

	if tr := p.TriggerByID(input); tr != nil {
		return tr.ID, nil
	}
	for i := range p.Triggers {
		if strings.EqualFold(p.Triggers[i].Name, input) {
			return p.Triggers[i].ID, nil
		}
	}

	var matches []string
	for i := range p.Triggers {
		if strings.HasPrefix(p.Triggers[i].ID, input) {
			matches = append(matches, p.Triggers[i].ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("trigger not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("trigger ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parseDate(input string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", input)
	}
	return t, nil
}
