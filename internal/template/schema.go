package template

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// TemplateSchema is the top-level JSON template structure.
type TemplateSchema struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	SubDeadlines []SubDeadlineConfig `json:"sub_deadlines"`
	Triggers     []TriggerConfig     `json:"triggers,omitempty"`
}

type SubDeadlineConfig struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Offset OffsetConfig `json:"offset"`
}

// OffsetConfig expresses a signed magnitude relative to an anchor.
// Anchor is "final_deadline" (the default when empty) or
// "trigger:<trigger blueprint id>".
type OffsetConfig struct {
	Anchor string `json:"anchor,omitempty"`
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

type TriggerConfig struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"` // defaults to authored position
}

// LoadSchema reads and parses a template JSON file.
func LoadSchema(path string) (*TemplateSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema TemplateSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &schema, nil
}

// ParseAnchor parses the anchor form used in template JSON. Only the two
// legal forms exist; an offset can never anchor to another offset.
func ParseAnchor(s string) (domain.Anchor, error) {
	switch {
	case s == "" || s == string(domain.AnchorFinalDeadline):
		return domain.FinalDeadlineAnchor(), nil
	case strings.HasPrefix(s, "trigger:"):
		id := strings.TrimPrefix(s, "trigger:")
		if id == "" {
			return domain.Anchor{}, fmt.Errorf("anchor %q: missing trigger blueprint id", s)
		}
		return domain.TriggerAnchor(id), nil
	default:
		return domain.Anchor{}, fmt.Errorf("anchor %q: must be \"final_deadline\" or \"trigger:<id>\"", s)
	}
}
