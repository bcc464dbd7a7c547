package main

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/releasewatch/internal"
)

// injectAppContext builds the container and resolves the application with
// every controller wired.
func injectAppContext() (*internal.AppInternal, error) {
	container := dig.New()
	if err := internal.RegisterProviders(container); err != nil {
		return nil, fmt.Errorf("failed to register providers: %w", err)
	}

	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		return nil, fmt.Errorf("failed to build the application: %w", err)
	}
	return appInternal, nil
}
