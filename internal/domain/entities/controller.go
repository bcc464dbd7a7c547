package entities

import "github.com/spf13/cobra"

// ControllerBind is the Cobra metadata a controller exposes for its subcommand.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entry point wired into the root command.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string)
}
