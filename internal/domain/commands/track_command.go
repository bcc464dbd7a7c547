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

// ErrInvalidPosition is returned when a list position does not exist.
var ErrInvalidPosition = errors.New("no tracked configuration at this position")

// TrackAction is one edit of a user's tracked list.
type TrackAction string

const (
	TrackActionList        TrackAction = "list"
	TrackActionAdd         TrackAction = "add"
	TrackActionRemove      TrackAction = "remove"
	TrackActionMoveUp      TrackAction = "up"
	TrackActionMoveDown    TrackAction = "down"
	TrackActionSetMode     TrackAction = "mode"
	TrackActionAcknowledge TrackAction = "ack"
)

// Track is the interface for managing a user's tracked list.
type Track interface {
	Execute(ctx context.Context, settings *entities.Settings, req TrackRequest) ([]entities.TrackedConfiguration, error)
}

// TrackRequest describes one list edit. Position is 1-based, as displayed.
type TrackRequest struct {
	UserID    string
	Action    TrackAction
	Name      string
	Position  int
	TrackType entities.TrackType
}

// TrackCommand edits the stored list of tracked configurations.
type TrackCommand struct {
	stateRegistry *infraRepos.StateRegistry
}

// NewTrackCommand creates a new TrackCommand.
func NewTrackCommand(stateRegistry *infraRepos.StateRegistry) *TrackCommand {
	return &TrackCommand{stateRegistry: stateRegistry}
}

// Execute applies the edit and returns the resulting list. Listing never writes.
func (it *TrackCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	req TrackRequest,
) ([]entities.TrackedConfiguration, error) {
	state, err := it.stateRegistry.Open(settings.Storage)
	if err != nil {
		return nil, err
	}
	defer closeState(state)

	configs, err := state.Load(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if req.Action == TrackActionList {
		return configs, nil
	}

	updated, err := applyTrackRequest(configs, req)
	if err != nil {
		return nil, err
	}
	if saveErr := state.Save(ctx, req.UserID, updated); saveErr != nil {
		return nil, saveErr
	}
	logger.Debugf("Applied %q to the list of user %q (%d entries)", req.Action, req.UserID, len(updated))
	return updated, nil
}

func applyTrackRequest(
	configs []entities.TrackedConfiguration,
	req TrackRequest,
) ([]entities.TrackedConfiguration, error) {
	updated := append([]entities.TrackedConfiguration(nil), configs...)

	if req.Action == TrackActionAdd {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, errors.New("configuration name is required")
		}
		trackType := req.TrackType
		if trackType == "" {
			trackType = entities.TrackLatest
		}
		return append(updated, entities.NewTrackedConfiguration(name, trackType)), nil
	}

	if req.Action == TrackActionAcknowledge {
		for i := range updated {
			updated[i].IsNew = false
		}
		return updated, nil
	}

	i := req.Position - 1
	if i < 0 || i >= len(updated) {
		return nil, fmt.Errorf("%w: %d (list has %d entries)", ErrInvalidPosition, req.Position, len(updated))
	}

	switch req.Action {
	case TrackActionRemove:
		return append(updated[:i], updated[i+1:]...), nil
	case TrackActionMoveUp:
		if i > 0 {
			updated[i], updated[i-1] = updated[i-1], updated[i]
		}
		return updated, nil
	case TrackActionMoveDown:
		if i < len(updated)-1 {
			updated[i], updated[i+1] = updated[i+1], updated[i]
		}
		return updated, nil
	case TrackActionSetMode:
		if req.TrackType == "" {
			return nil, errors.New("tracking mode is required")
		}
		updated[i] = updated[i].WithTrackType(req.TrackType)
		return updated, nil
	default:
		return nil, fmt.Errorf("unknown list action %q", req.Action)
	}
}
