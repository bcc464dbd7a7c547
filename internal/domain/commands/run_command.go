package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releasewatch/internal/infrastructure/repositories"
)

const (
	runResultSuccess = "success"
	runResultPartial = "partial"
	runResultAborted = "aborted"
)

// Run is the interface for the run command (daily batch mode).
type Run interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RunOptions) (*RunSummary, error)
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	Verbose    bool
	UserFilter string // If set, only check this user (CLI override)
}

// RunSummary describes one finished batch.
type RunSummary struct {
	RunID   string
	Users   int
	Skipped int
	Failed  int
	Reports []*CheckReport
}

// RunCommand orchestrates the daily check:
// log in -> fetch the catalog once -> check every stored user.
type RunCommand struct {
	stateRegistry  *infraRepos.StateRegistry
	catalogFactory infraRepos.CatalogFactory
	check          Check
	metrics        *Metrics
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(
	stateRegistry *infraRepos.StateRegistry,
	catalogFactory infraRepos.CatalogFactory,
	check Check,
	metrics *Metrics,
) *RunCommand {
	return &RunCommand{
		stateRegistry:  stateRegistry,
		catalogFactory: catalogFactory,
		check:          check,
		metrics:        metrics,
	}
}

// Execute runs one check cycle over every user with stored state. A failure to
// fetch the catalog aborts the run; per-user failures are counted and skipped.
func (it *RunCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	runOpts RunOptions,
) (*RunSummary, error) {
	if runOpts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	started := time.Now()
	summary := &RunSummary{RunID: uuid.NewString()}
	log := logger.WithField("run_id", summary.RunID)

	summary, err := it.execute(ctx, settings, runOpts, summary, log)

	result := runResultSuccess
	switch {
	case err != nil:
		result = runResultAborted
	case summary.Failed > 0:
		result = runResultPartial
	}
	it.metrics.observeRun(result, summary.Users, time.Since(started))
	if writeErr := it.metrics.WriteTextfile(settings.Metrics.Textfile); writeErr != nil {
		log.Warnf("Metrics were not exported: %v", writeErr)
	}

	if err != nil {
		return summary, err
	}
	log.Infof(
		"Run complete: %d users checked, %d skipped, %d errors",
		summary.Users, summary.Skipped, summary.Failed,
	)
	return summary, nil
}

func (it *RunCommand) execute(
	ctx context.Context,
	settings *entities.Settings,
	runOpts RunOptions,
	summary *RunSummary,
	log *logger.Entry,
) (*RunSummary, error) {
	state, err := it.stateRegistry.Open(settings.Storage)
	if err != nil {
		return summary, err
	}
	defer closeState(state)

	users, err := state.Users(ctx)
	if err != nil {
		return summary, err
	}
	if len(users) == 0 {
		log.Info("No users with tracked configurations, nothing to do")
		return summary, nil
	}

	log.Info("Fetching the release catalog...")
	catalogRepo, err := it.catalogFactory(settings.Portal)
	if err != nil {
		return summary, err
	}
	catalog, err := catalogRepo.FetchCatalog(ctx)
	if err != nil {
		return summary, fmt.Errorf("daily check skipped: %w", err)
	}

	for _, userID := range users {
		// Skip if CLI filter is set and doesn't match
		if runOpts.UserFilter != "" && userID != runOpts.UserFilter {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}

		configs, loadErr := state.Load(ctx, userID)
		if loadErr != nil {
			log.Errorf("Failed to load configurations of user %q: %v", userID, loadErr)
			summary.Failed++
			continue
		}
		if len(configs) == 0 {
			summary.Skipped++
			continue
		}

		report, checkErr := it.check.CheckUser(ctx, state, userID, configs, catalog)
		if checkErr != nil {
			log.Errorf("Check failed for user %q: %v", userID, checkErr)
			summary.Failed++
			continue
		}

		summary.Users++
		summary.Reports = append(summary.Reports, report)
		log.WithField("user", userID).Infof("%d configurations checked, %d changed", len(report.Results), report.Changed())
	}
	return summary, nil
}
