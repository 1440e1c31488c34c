package formatter

import (
	"fmt"
	"strings"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// ProjectInspectData holds everything needed to render a project inspect view.
type ProjectInspectData struct {
	Project  *domain.Project
	Triggers []domain.Trigger
	// OriginalDates maps sub-deadline ID to the date the template would
	// give it against the current final deadline, when that differs from
	// the stored date.
	OriginalDates map[string]string
}

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "TITLE", "DEADLINE", "PROGRESS", "TRIGGERS"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		done := 0
		for _, sub := range p.SubDeadlines {
			if sub.IsCompleted {
				done++
			}
		}
		active := 0
		for _, tr := range p.Triggers {
			if tr.IsActive {
				active++
			}
		}

		triggerCell := Dim("--")
		if len(p.Triggers) > 0 {
			triggerCell = fmt.Sprintf("%d/%d", active, len(p.Triggers))
			if active == len(p.Triggers) {
				triggerCell = StyleGreen.Render(triggerCell)
			} else {
				triggerCell = StyleYellow.Render(triggerCell)
			}
		}

		rows = append(rows, []string{
			Dim(TruncID(p.ID)),
			Bold(p.Title),
			RelativeDateStyled(p.FinalDeadline) + " " + Dim("("+p.FinalDeadline.Format("2006-01-02")+")"),
			fmt.Sprintf("%d/%d", done, len(p.SubDeadlines)),
			triggerCell,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Projects", table)
}

// FormatProjectInspect renders a styled project card with its sub-deadline
// schedule and trigger states.
func FormatProjectInspect(data ProjectInspectData) string {
	p := data.Project
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Title) + "\n")
	if p.TemplateID != "" {
		b.WriteString(StylePurple.Render("from template "+p.TemplateID) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID      "), Dim(TruncID(p.ID))))
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("DEADLINE"),
		RelativeDateStyled(p.FinalDeadline), Dim("("+p.FinalDeadline.Format("Jan 2, 2006")+")")))
	b.WriteString("\n")

	b.WriteString(Header("Schedule"))
	b.WriteString("\n")
	if len(p.SubDeadlines) == 0 {
		b.WriteString(Dim("No sub-deadlines.") + "\n")
	}
	for _, sub := range p.SubDeadlines {
		line := fmt.Sprintf("%s %s  %s", CompletionMark(sub), DateCell(sub), StyleFg.Render(sub.Title))
		if orig, ok := data.OriginalDates[sub.ID]; ok {
			line += "  " + Dim("(template: "+orig+")")
		}
		b.WriteString(line + "\n")
	}

	if len(data.Triggers) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Triggers"))
		b.WriteString("\n")
		for _, tr := range data.Triggers {
			line := fmt.Sprintf("%s  %s", TriggerPill(tr), StyleFg.Render(tr.Name))
			if tr.ActivationDate != nil {
				line += "  " + Dim("since "+tr.ActivationDate.Format("2006-01-02"))
			}
			b.WriteString(line + "\n")
		}
	}

	return RenderBox("", b.String())
}
