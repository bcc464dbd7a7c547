package internal

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/releasewatch/internal/domain/commands"
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/infrastructure/controllers"
	"github.com/rios0rios0/releasewatch/internal/infrastructure/repositories"
)

type layer struct {
	name     string
	register func(*dig.Container) error
}

// RegisterProviders registers every layer bottom-up (storage and portal
// adapters, settings, commands, controllers) and then the application itself.
func RegisterProviders(container *dig.Container) error {
	layers := []layer{
		{name: "repositories", register: repositories.RegisterProviders},
		{name: "entities", register: entities.RegisterProviders},
		{name: "commands", register: commands.RegisterProviders},
		{name: "controllers", register: controllers.RegisterProviders},
	}
	for _, l := range layers {
		if err := l.register(container); err != nil {
			return fmt.Errorf("failed to register %s: %w", l.name, err)
		}
	}

	return container.Provide(NewAppInternal)
}
