package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releasewatch/internal/domain/commands"
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// RunController handles the "run" subcommand (daily batch mode).
type RunController struct {
	command  commands.Run
	settings entities.SettingsLoader
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Run, settings entities.SettingsLoader) *RunController {
	return &RunController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Check every user's tracked configurations",
		Long: `Log in to the release portal, read the release catalog once
and check the tracked configurations of every stored user.

This is the main command intended to be used in a cronjob.
Each user's report is printed to stdout; new versions stay
flagged until the user acknowledges them.`,
	}
}

// Execute runs the batch check.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	userFilter, _ := cmd.Flags().GetString("user")

	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	logger.Info("Starting releasewatch run...")

	summary, err := it.command.Execute(ctx, settings, commands.RunOptions{
		Verbose:    verbose,
		UserFilter: userFilter,
	})
	if err != nil {
		logger.Errorf("Run failed: %v", err)
		return
	}

	out := cmd.OutOrStdout()
	for _, report := range summary.Reports {
		_, _ = fmt.Fprintf(out, "Daily check for %s:\n\n%s\n\n", report.UserID, report.Text)
	}
}
