package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releasewatch/internal/infrastructure/repositories"
)

// Path is the interface for the upgrade-path query.
type Path interface {
	Execute(ctx context.Context, settings *entities.Settings, opts PathOptions) (*entities.PathResult, error)
}

// PathOptions names the configuration and the version to upgrade from.
type PathOptions struct {
	ConfigurationName string
	StartVersion      string
}

// PathCommand counts the upgrade steps between a version and the newest
// release of a configuration.
type PathCommand struct {
	catalogFactory infraRepos.CatalogFactory
	metrics        *Metrics
}

// NewPathCommand creates a new PathCommand.
func NewPathCommand(catalogFactory infraRepos.CatalogFactory, metrics *Metrics) *PathCommand {
	return &PathCommand{catalogFactory: catalogFactory, metrics: metrics}
}

// Execute resolves the targets from the catalog row, reads the history table and
// walks the transition graph.
func (it *PathCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PathOptions,
) (*entities.PathResult, error) {
	result, err := it.execute(ctx, settings, opts)
	it.metrics.observePath(result, err)
	return result, err
}

func (it *PathCommand) execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PathOptions,
) (*entities.PathResult, error) {
	if strings.TrimSpace(opts.StartVersion) == "" {
		return nil, errors.New("start version is required")
	}
	catalogRepo, err := it.catalogFactory(settings.Portal)
	if err != nil {
		return nil, err
	}

	document, err := catalogRepo.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release catalog: %w", err)
	}
	row, found := entities.NewCatalog(document).Find(opts.ConfigurationName)
	if !found {
		return nil, fmt.Errorf("%w: %q", entities.ErrNotFound, opts.ConfigurationName)
	}

	observations, err := entities.ExtractObservations(row)
	if err != nil {
		return nil, err
	}
	targets, err := entities.ResolveTargets(observations)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Targets of %q: LTS %s, latest %s", row.Name, targets.LTS, targets.NonLTS)

	history, err := catalogRepo.FetchHistory(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release history of %q: %w", row.Name, err)
	}

	return entities.ComputePath(history, opts.StartVersion, targets, settings.Path.MaxSteps)
}
