package formatter

import (
	"fmt"
	"strings"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// FormatTemplateList renders a styled template list inside a bordered box.
func FormatTemplateList(templates []*domain.Template) string {
	headers := []string{"ID", "NAME", "SUB-DEADLINES", "TRIGGERS"}
	rows := make([][]string, 0, len(templates))

	for _, t := range templates {
		rows = append(rows, []string{
			Dim(t.ID),
			Bold(t.Name),
			fmt.Sprintf("%d", len(t.SubDeadlines)),
			fmt.Sprintf("%d", len(t.Triggers)),
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Templates", table)
}

// FormatTemplateShow renders a styled template detail card with every
// blueprint and its offset rule.
func FormatTemplateShow(t *domain.Template) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(t.Name) + "  " + Dim(t.ID) + "\n\n")

	b.WriteString(Header("Sub-deadlines"))
	b.WriteString("\n")
	for _, bp := range t.SubDeadlines {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			StyleFg.Render(bp.Title),
			Dim(describeOffset(bp.Offset))))
	}

	if len(t.Triggers) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Triggers"))
		b.WriteString("\n")
		for _, tr := range t.Triggers {
			line := StyleFg.Render(tr.Name)
			if deps := t.Dependents[tr.ID]; len(deps) > 0 {
				line += "  " + Dim(fmt.Sprintf("drives %s", strings.Join(deps, ", ")))
			}
			b.WriteString(line + "\n")
		}
	}

	return RenderBox("", b.String())
}

// FormatTemplateProblems renders catalog load problems, one per line.
func FormatTemplateProblems(problems []error) string {
	if len(problems) == 0 {
		return StyleGreen.Render("All templates loaded cleanly.")
	}
	var b strings.Builder
	b.WriteString(Header("Template problems"))
	b.WriteString("\n")
	for _, p := range problems {
		b.WriteString(StyleRed.Render("✖ ") + StyleFg.Render(p.Error()) + "\n")
	}
	return b.String()
}

func describeOffset(off domain.Offset) string {
	unit := string(off.Unit)
	amount := off.Amount
	if amount != 1 && amount != -1 {
		unit += "s"
	}
	direction := "after"
	if amount < 0 {
		direction = "before"
		amount = -amount
	}
	anchor := "final deadline"
	if off.Anchor.Kind == domain.AnchorTrigger {
		anchor = "trigger " + off.Anchor.TriggerBlueprintID
	}
	return fmt.Sprintf("%d %s %s %s", amount, unit, direction, anchor)
}
