package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeobrien/deadline-calendar/internal/cli/formatter"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect the template catalog",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateProblemsCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templates, err := app.Templates.List(ctx)
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatTemplateList(templates))

			if problems := app.Templates.Problems(ctx); len(problems) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(
					fmt.Sprintf("%d template(s) failed to load; run 'dlc template problems'", len(problems))))
			}
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template's blueprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := app.Templates.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatTemplateShow(tpl))
			return nil
		},
	}
}

func newTemplateProblemsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "Show templates that failed to load",
		RunE: func(cmd *cobra.Command, args []string) error {
			problems := app.Templates.Problems(context.Background())
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatTemplateProblems(problems))
			return nil
		},
	}
}
