package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeobrien/deadline-calendar/internal/cli/formatter"
)

func newSubCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Manage sub-deadlines",
	}

	cmd.AddCommand(
		newSubAddCmd(app),
		newSubToggleCmd(app),
		newSubOriginalDateCmd(app),
	)

	return cmd
}

func newSubAddCmd(app *App) *cobra.Command {
	var project, title string
	var date dateValue

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual sub-deadline to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			p, err := app.Projects.AddSubDeadline(ctx, projectID, title, date.Time())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", title, p.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or title")
	cmd.Flags().StringVar(&title, "title", "", "Sub-deadline title")
	cmd.Flags().Var(&date, "date", "Date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newSubToggleCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Toggle a sub-deadline's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := getProject(ctx, app, project)
			if err != nil {
				return err
			}
			subID, err := resolveSubDeadlineID(p, args[0])
			if err != nil {
				return err
			}

			updated, err := app.Projects.ToggleSubDeadlineCompletion(ctx, subID, p.ID)
			if err != nil {
				return err
			}
			sub := updated.SubDeadlineByID(subID)
			state := "pending"
			if sub.IsCompleted {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", sub.Title, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or title")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSubOriginalDateCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "original-date ID",
		Short: "Show the date the template would give a sub-deadline today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := getProject(ctx, app, project)
			if err != nil {
				return err
			}
			subID, err := resolveSubDeadlineID(p, args[0])
			if err != nil {
				return err
			}

			hint, err := app.Projects.OriginalTemplateDate(ctx, subID, p.ID)
			if err != nil {
				return err
			}
			sub := p.SubDeadlineByID(subID)
			if hint == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is a manual entry; no template date\n", sub.Title)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current:  %s\n", sub.Date.Format("2006-01-02"))
			fmt.Fprintf(out, "Template: %s\n", hint.Format("2006-01-02"))
			if !hint.Equal(sub.Date) {
				fmt.Fprintln(out, formatter.Dim("The stored date has drifted from the template."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or title")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
