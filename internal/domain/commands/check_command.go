package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/releasewatch/internal/infrastructure/repositories"
)

// Check is the interface for the check command (manual check of one user).
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, userID string) (*CheckReport, error)
	CheckUser(
		ctx context.Context,
		state repositories.StateRepository,
		userID string,
		configs []entities.TrackedConfiguration,
		catalog *entities.CatalogDocument,
	) (*CheckReport, error)
}

// CheckReport is what a check shows the user and what it stored.
type CheckReport struct {
	UserID  string
	Text    string
	Configs []entities.TrackedConfiguration
	Results []entities.DiffResult
}

// Changed counts the configurations whose version moved in this check.
func (r *CheckReport) Changed() int {
	count := 0
	for _, result := range r.Results {
		if result.Status == entities.StatusChanged {
			count++
		}
	}
	return count
}

// CheckCommand diffs a user's tracked configurations against the catalog and
// persists the new observations.
type CheckCommand struct {
	stateRegistry  *infraRepos.StateRegistry
	catalogFactory infraRepos.CatalogFactory
	metrics        *Metrics
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(
	stateRegistry *infraRepos.StateRegistry,
	catalogFactory infraRepos.CatalogFactory,
	metrics *Metrics,
) *CheckCommand {
	return &CheckCommand{
		stateRegistry:  stateRegistry,
		catalogFactory: catalogFactory,
		metrics:        metrics,
	}
}

// Execute fetches the catalog once and checks the given user.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	userID string,
) (*CheckReport, error) {
	catalogRepo, err := it.catalogFactory(settings.Portal)
	if err != nil {
		return nil, err
	}
	catalog, err := catalogRepo.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release catalog: %w", err)
	}

	state, err := it.stateRegistry.Open(settings.Storage)
	if err != nil {
		return nil, err
	}
	defer closeState(state)

	configs, err := state.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return it.CheckUser(ctx, state, userID, configs, catalog)
}

// CheckUser diffs the loaded list of userID and writes the result back. The
// display text is rendered before the new list is saved.
func (it *CheckCommand) CheckUser(
	ctx context.Context,
	state repositories.StateRepository,
	userID string,
	configs []entities.TrackedConfiguration,
	catalog *entities.CatalogDocument,
) (*CheckReport, error) {
	results, err := entities.DiffAll(configs, entities.NewCatalog(catalog))
	if err != nil {
		return nil, fmt.Errorf("failed to check user %q: %w", userID, err)
	}

	updated := make([]entities.TrackedConfiguration, len(results))
	for i, result := range results {
		updated[i] = result.Config
	}
	report := &CheckReport{
		UserID:  userID,
		Text:    entities.FormatDiffResults(results),
		Configs: updated,
		Results: results,
	}

	if saveErr := state.Save(ctx, userID, updated); saveErr != nil {
		return nil, saveErr
	}
	it.metrics.observeResults(results)

	logger.Debugf("Checked %d configurations of user %q, %d changed", len(results), userID, report.Changed())
	return report, nil
}

func closeState(state repositories.StateRepository) {
	if err := state.Close(); err != nil {
		logger.Warnf("Failed to close %s storage: %v", state.Name(), err)
	}
}
