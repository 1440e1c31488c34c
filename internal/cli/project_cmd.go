package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeobrien/deadline-calendar/internal/cli/formatter"
	"github.com/aeobrien/deadline-calendar/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectInitCmd(app),
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectRemoveCmd(app),
		newProjectSetDeadlineCmd(app),
		newProjectCompletedCmd(app),
	)

	return cmd
}

func newProjectInitCmd(app *App) *cobra.Command {
	var templateID, title string
	var due dateValue

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.InstantiateProject(context.Background(), templateID, due.Time(), title)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s] with %d sub-deadlines and %d triggers\n",
				p.Title, formatter.TruncID(p.ID), len(p.SubDeadlines), len(p.Triggers))
			return nil
		},
	}

	cmd.Flags().StringVar(&templateID, "template", "", "Template ID or name")
	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().Var(&due, "due", "Final deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var title string
	var due dateValue

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an empty project without a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.CreateManual(context.Background(), title, due.Time())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Title, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().Var(&due, "due", "Final deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a project's schedule and triggers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Get(ctx, projectID)
			if err != nil {
				return err
			}

			triggers, err := app.Triggers.TriggersForProject(ctx, projectID)
			if err != nil {
				return err
			}

			// Annotate sub-deadlines whose stored date has drifted from
			// what the template would compute today.
			originals := make(map[string]string)
			for _, sub := range p.SubDeadlines {
				hint, err := app.Projects.OriginalTemplateDate(ctx, sub.ID, projectID)
				if err != nil || hint == nil {
					continue
				}
				if !hint.Equal(sub.Date) {
					originals[sub.ID] = hint.Format("2006-01-02")
				}
			}

			data := formatter.ProjectInspectData{
				Project:       p,
				Triggers:      triggers,
				OriginalDates: originals,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectInspect(data))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Remove(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", formatter.TruncID(projectID))
			return nil
		},
	}
}

func newProjectSetDeadlineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-deadline ID DATE",
		Short: "Move a project's final deadline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			date, err := parseDate(args[1])
			if err != nil {
				return err
			}

			p, err := app.Projects.SetFinalDeadline(ctx, projectID, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Final deadline of %s is now %s\n",
				p.Title, p.FinalDeadline.Format("2006-01-02"))
			return nil
		},
	}
}

func newProjectCompletedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "completed",
		Short: "List projects whose triggers are all active",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.ProjectsAllTriggersActive(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects with all triggers active.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func getProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	projectID, err := resolveProjectID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return app.Projects.Get(ctx, projectID)
}
