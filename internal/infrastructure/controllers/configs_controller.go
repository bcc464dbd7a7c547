package controllers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releasewatch/internal/domain/commands"
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// ConfigsController handles the "configs" subcommand (tracked list management).
type ConfigsController struct {
	command  commands.Track
	settings entities.SettingsLoader
}

// NewConfigsController creates a new ConfigsController.
func NewConfigsController(command commands.Track, settings entities.SettingsLoader) *ConfigsController {
	return &ConfigsController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the configs controller.
func (it *ConfigsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "configs <list|add|remove|up|down|mode|ack> [args]",
		Short: "Manage the tracked configurations of a user",
		Long: `Manage the ordered list of configurations tracked for --user.

  configs list                  Show the list with the last known versions
  configs add <name>            Track a configuration (see --mode)
  configs remove <n>            Stop tracking entry n
  configs up <n> | down <n>     Move entry n in the list
  configs mode <n> <mode>       Switch entry n to latest, dp or both
  configs ack                   Acknowledge every new version`,
	}
}

// Execute applies one list edit and prints the resulting list.
func (it *ConfigsController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	userID, err := requireUser(cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	modeFlag, _ := cmd.Flags().GetString("mode")
	req, err := parseTrackRequest(userID, modeFlag, args)
	if err != nil {
		logger.Error(err)
		return
	}
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	configs, err := it.command.Execute(ctx, settings, req)
	if err != nil {
		logger.Errorf("Failed to update the list: %v", err)
		return
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), entities.FormatStoredConfigurations(configs))
}

// AddFlags adds the configs-specific flags to the given Cobra command.
func (it *ConfigsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", string(entities.TrackLatest),
		"Tracking mode for added configurations (latest, dp, both)")
}

func parseTrackRequest(userID, modeFlag string, args []string) (commands.TrackRequest, error) {
	req := commands.TrackRequest{UserID: userID, Action: commands.TrackActionList}
	if len(args) == 0 {
		return req, nil
	}

	req.Action = commands.TrackAction(strings.ToLower(args[0]))
	rest := args[1:]

	switch req.Action {
	case commands.TrackActionList, commands.TrackActionAcknowledge:
		return req, nil
	case commands.TrackActionAdd:
		mode, err := entities.ParseTrackType(modeFlag)
		if err != nil {
			return req, err
		}
		req.Name = strings.Join(rest, " ")
		req.TrackType = mode
		return req, nil
	case commands.TrackActionRemove, commands.TrackActionMoveUp, commands.TrackActionMoveDown:
		if len(rest) != 1 {
			return req, fmt.Errorf("%q expects one list position", req.Action)
		}
		position, err := strconv.Atoi(rest[0])
		if err != nil {
			return req, fmt.Errorf("invalid list position %q: %w", rest[0], err)
		}
		req.Position = position
		return req, nil
	case commands.TrackActionSetMode:
		if len(rest) != 2 { //nolint:mnd // position and mode
			return req, errors.New(`"mode" expects a list position and a mode`)
		}
		position, err := strconv.Atoi(rest[0])
		if err != nil {
			return req, fmt.Errorf("invalid list position %q: %w", rest[0], err)
		}
		mode, err := entities.ParseTrackType(rest[1])
		if err != nil {
			return req, err
		}
		req.Position = position
		req.TrackType = mode
		return req, nil
	default:
		return req, fmt.Errorf("unknown list action %q", args[0])
	}
}
