package repositories

import (
	"go.uber.org/dig"

	badgerRepo "github.com/rios0rios0/releasewatch/internal/infrastructure/repositories/badger"
	fileRepo "github.com/rios0rios0/releasewatch/internal/infrastructure/repositories/file"
	releasesRepo "github.com/rios0rios0/releasewatch/internal/infrastructure/repositories/releases"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register state registry with all storage backends
	if err := container.Provide(func() *StateRegistry {
		reg := NewStateRegistry()
		reg.Register("badger", badgerRepo.NewStateRepository)
		reg.Register("file", fileRepo.NewStateRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register the release portal adapter
	if err := container.Provide(func() CatalogFactory {
		return releasesRepo.NewCatalogRepository
	}); err != nil {
		return err
	}

	return nil
}
