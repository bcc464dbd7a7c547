package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releasewatch/internal/domain/commands"
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// CheckController handles the "check" subcommand (manual check of one user).
type CheckController struct {
	command  commands.Check
	settings entities.SettingsLoader
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check, settings entities.SettingsLoader) *CheckController {
	return &CheckController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Check one user's tracked configurations now",
		Long: `Compare the tracked configurations of --user against the current
release catalog, store the new observations and print the results.`,
	}
}

// Execute runs the manual check.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	userID, err := requireUser(cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	report, err := it.command.Execute(ctx, settings, userID)
	if err != nil {
		logger.Errorf("Check failed: %v", err)
		return
	}
	if len(report.Results) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No configurations are tracked yet.")
		return
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Check results:\n\n%s\n", report.Text)
}
