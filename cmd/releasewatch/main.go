package main

import (
	"os"

	"github.com/mattn/go-isatty"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releasewatch/internal"
)

// flagged is implemented by controllers that own subcommand-specific flags.
type flagged interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "releasewatch",
		Short: "Release catalog watcher and upgrade path calculator",
		Long: `Tracks configurations published on the vendor release portal,
reports new versions against the last observed state and counts
the sequential updates required to reach the current release.

Usage modes:
  releasewatch run                        Daily check of every user (cronjob)
  releasewatch check --user ID            Check one user now
  releasewatch configs add NAME --user ID Manage the tracked list
  releasewatch path NAME VERSION          Count the upgrade steps`,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("user", "u", "",
		"User whose tracked list is read or changed")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fc, ok := ctrl.(flagged); ok {
			fc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Add all subcommands via DIG
	appContext, err := injectAppContext()
	if err != nil {
		logger.Fatalf("Failed to start 'releasewatch': %s", err)
	}
	addSubcommands(cobraRoot, appContext)

	if err = cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'releasewatch': %s", err)
	}
}
