package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register shared collaborators and command constructors
	for _, constructor := range []interface{}{
		NewMetrics,
		NewCheckCommand,
		NewRunCommand,
		NewPathCommand,
		NewTrackCommand,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *CheckCommand) Check {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RunCommand) Run {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PathCommand) Path {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *TrackCommand) Track {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
