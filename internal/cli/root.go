package cli

import (
	"github.com/spf13/cobra"

	"github.com/aeobrien/deadline-calendar/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Triggers  service.TriggerService
	Templates service.TemplateService
}

// NewRootCmd creates the top-level "dlc" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "dlc",
		Short: "Deadline calendar: template-driven project schedules",
	}

	root.AddCommand(
		newProjectCmd(app),
		newSubCmd(app),
		newTriggerCmd(app),
		newTemplateCmd(app),
	)

	return root
}
