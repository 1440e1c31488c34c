package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeobrien/deadline-calendar/internal/cli/formatter"
	"github.com/aeobrien/deadline-calendar/internal/schedule"
)

func newTriggerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Manage project triggers",
	}

	cmd.AddCommand(
		newTriggerListCmd(app),
		newTriggerActivateCmd(app),
		newTriggerDeactivateCmd(app),
		newTriggerAddCmd(app),
	)

	return cmd
}

func newTriggerListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			triggers, err := app.Triggers.TriggersForProject(ctx, projectID)
			if err != nil {
				return err
			}

			if len(triggers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No triggers.")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, tr := range triggers {
				line := fmt.Sprintf("%s  %s  %s", formatter.Dim(formatter.TruncID(tr.ID)), formatter.TriggerPill(tr), tr.Name)
				if tr.ActivationDate != nil {
					line += "  " + formatter.Dim("since "+tr.ActivationDate.Format("2006-01-02"))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or title")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTriggerActivateCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "activate ID",
		Short: "Activate a trigger and resolve its dependent dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transition(cmd, app, project, args[0], "activate", app.Triggers.Activate)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or title")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTriggerDeactivateCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a trigger and revert its dependent dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transition(cmd, app, project, args[0], "deactivate", app.Triggers.Deactivate)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or title")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func transition(cmd *cobra.Command, app *App, project, trigger, verb string,
	fn func(context.Context, string, string) (*schedule.TransitionOutcome, error)) error {

	ctx := context.Background()
	p, err := getProject(ctx, app, project)
	if err != nil {
		return err
	}
	triggerID, err := resolveTriggerID(p, trigger)
	if err != nil {
		return err
	}

	out, err := fn(ctx, p.ID, triggerID)
	if err != nil {
		return err
	}

	tr := out.Project.TriggerByID(triggerID)
	if out.NoOp {
		fmt.Fprintf(cmd.OutOrStdout(), "Trigger %s is already in that state; nothing to %s\n", tr.Name, verb)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Trigger %s %sd\n", tr.Name, verb)
	return nil
}

func newTriggerAddCmd(app *App) *cobra.Command {
	var project, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual trigger to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			p, err := app.Projects.AddTrigger(ctx, projectID, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added trigger %q to %s\n", name, p.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or title")
	cmd.Flags().StringVar(&name, "name", "", "Trigger name")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
