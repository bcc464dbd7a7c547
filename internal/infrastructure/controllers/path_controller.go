package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releasewatch/internal/domain/commands"
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

const pathArgs = 2

// PathController handles the "path" subcommand (upgrade step calculator).
type PathController struct {
	command  commands.Path
	settings entities.SettingsLoader
}

// NewPathController creates a new PathController.
func NewPathController(command commands.Path, settings entities.SettingsLoader) *PathController {
	return &PathController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the path controller.
func (it *PathController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "path <configuration> <version>",
		Short: "Count the upgrades from a version to the current release",
		Long: `Read the upgrade history of a configuration and count the
sequential updates needed to go from <version> to the newest
long-term-support release (or the newest release when <version>
is already past the long-term-support one).`,
	}
}

// Execute runs the path query.
func (it *PathController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) != pathArgs {
		logger.Errorf("expected a configuration name and a version, got %d arguments", len(args))
		return
	}
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	result, err := it.command.Execute(ctx, settings, commands.PathOptions{
		ConfigurationName: args[0],
		StartVersion:      args[1],
	})
	out := cmd.OutOrStdout()

	var noPath *entities.NoPathError
	var truncated *entities.TruncatedError
	switch {
	case err == nil:
		_, _ = fmt.Fprintln(out, entities.FormatPathResult(result))
	case errors.As(err, &noPath), errors.As(err, &truncated):
		_, _ = fmt.Fprintf(out, "Could not reach %s from %s: %v\n", result.Target, result.Start, err)
	case errors.Is(err, entities.ErrNotFound):
		_, _ = fmt.Fprintf(out, "Configuration %q was not found in the release catalog.\n", args[0])
	default:
		logger.Errorf("Path query failed: %v", err)
	}
}
