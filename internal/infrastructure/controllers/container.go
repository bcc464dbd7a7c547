package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewRunController); err != nil {
		return err
	}
	if err := container.Provide(NewCheckController); err != nil {
		return err
	}
	if err := container.Provide(NewPathController); err != nil {
		return err
	}
	if err := container.Provide(NewConfigsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	runController *RunController,
	checkController *CheckController,
	pathController *PathController,
	configsController *ConfigsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		runController,
		checkController,
		pathController,
		configsController,
	}
}
