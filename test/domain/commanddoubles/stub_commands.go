//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releasewatch/internal/domain/commands"
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
)

// StubRunCommand is a stub implementation of commands.Run.
type StubRunCommand struct {
	ExecuteCallCount int
	Summary          *commands.RunSummary
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.RunOptions
}

var _ commands.Run = (*StubRunCommand)(nil)

func (s *StubRunCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.RunOptions,
) (*commands.RunSummary, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Summary, s.ExecuteErr
}

// StubCheckCommand is a stub implementation of commands.Check.
type StubCheckCommand struct {
	Report     *commands.CheckReport
	ExecuteErr error
	LastUserID string
	UserCalls  []string
}

var _ commands.Check = (*StubCheckCommand)(nil)

func (s *StubCheckCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	userID string,
) (*commands.CheckReport, error) {
	s.LastUserID = userID
	return s.Report, s.ExecuteErr
}

func (s *StubCheckCommand) CheckUser(
	_ context.Context,
	_ repositories.StateRepository,
	userID string,
	_ []entities.TrackedConfiguration,
	_ *entities.CatalogDocument,
) (*commands.CheckReport, error) {
	s.UserCalls = append(s.UserCalls, userID)
	return s.Report, s.ExecuteErr
}

// StubPathCommand is a stub implementation of commands.Path.
type StubPathCommand struct {
	Result     *entities.PathResult
	ExecuteErr error
	LastOpts   commands.PathOptions
}

var _ commands.Path = (*StubPathCommand)(nil)

func (s *StubPathCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.PathOptions,
) (*entities.PathResult, error) {
	s.LastOpts = opts
	return s.Result, s.ExecuteErr
}

// StubTrackCommand is a stub implementation of commands.Track.
type StubTrackCommand struct {
	Configs     []entities.TrackedConfiguration
	ExecuteErr  error
	LastRequest commands.TrackRequest
}

var _ commands.Track = (*StubTrackCommand)(nil)

func (s *StubTrackCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	req commands.TrackRequest,
) ([]entities.TrackedConfiguration, error) {
	s.LastRequest = req
	return s.Configs, s.ExecuteErr
}
