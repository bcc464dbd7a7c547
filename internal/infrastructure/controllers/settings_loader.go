package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// loadSettings resolves --config (or the auto-detected file) and loads it.
func loadSettings(cmd *cobra.Command, load entities.SettingsLoader) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			return nil, fmt.Errorf(
				"no config file found: %w\nSpecify one with --config or create releasewatch.yaml",
				err,
			)
		}
	}

	logger.Debugf("Using config file: %s", cfgPath)
	return load(cfgPath)
}

// requireUser reads the --user flag shared by the per-user subcommands.
func requireUser(cmd *cobra.Command) (string, error) {
	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		return "", fmt.Errorf("--user is required for %q", cmd.Name())
	}
	return userID, nil
}
