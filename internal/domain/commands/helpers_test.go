//go:build unit

package commands_test

import (
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releasewatch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/releasewatch/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/releasewatch/test/infrastructure/repositorydoubles"
	"github.com/rios0rios0/releasewatch/test/domain/entitybuilders"
)

const spyBackend = "spy"

func newSettings() *entities.Settings {
	return &entities.Settings{
		Storage: entities.StorageConfig{Backend: spyBackend, Path: "unused"},
		Path:    entities.PathConfig{MaxSteps: 10},
	}
}

func registryWith(state *doubles.SpyStateRepository) *infraRepos.StateRegistry {
	registry := infraRepos.NewStateRegistry()
	registry.Register(spyBackend, func(string) (domainRepos.StateRepository, error) {
		return state, nil
	})
	return registry
}

func factoryFor(catalog *doubles.StubCatalogRepository) infraRepos.CatalogFactory {
	return func(entities.PortalConfig) (domainRepos.CatalogRepository, error) {
		return catalog, nil
	}
}

// accountingCatalog lists one configuration with a latest and an LTS release.
func accountingCatalog() *entities.CatalogDocument {
	return &entities.CatalogDocument{Rows: []entities.CatalogRow{
		entitybuilders.NewCatalogRowBuilder().
			WithName("Бухгалтерия предприятия").
			WithRelease("3.0.180.20", "10.10.25").
			WithLTSRelease("3.0.175.40", "01.08.25").
			BuildCatalogRow(),
	}}
}
