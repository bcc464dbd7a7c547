//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sort"
	"sync"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
)

// SpyStateRepository implements repositories.StateRepository in memory and
// records every save.
type SpyStateRepository struct {
	mu sync.Mutex

	// --- state ---
	Lists map[string][]entities.TrackedConfiguration

	// --- failures ---
	LoadErr  error
	SaveErr  error
	UsersErr error

	// --- call tracking ---
	LoadCalls int
	SaveCalls []SaveCall
	Closed    bool
}

// SaveCall records a single invocation of Save.
type SaveCall struct {
	UserID  string
	Configs []entities.TrackedConfiguration
}

var _ repositories.StateRepository = (*SpyStateRepository)(nil)

// NewSpyStateRepository creates a spy pre-filled with the given lists.
func NewSpyStateRepository(lists map[string][]entities.TrackedConfiguration) *SpyStateRepository {
	if lists == nil {
		lists = map[string][]entities.TrackedConfiguration{}
	}
	return &SpyStateRepository{Lists: lists}
}

func (s *SpyStateRepository) Name() string { return "spy" }

func (s *SpyStateRepository) Load(_ context.Context, userID string) ([]entities.TrackedConfiguration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LoadCalls++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]entities.TrackedConfiguration{}, s.Lists[userID]...), nil
}

func (s *SpyStateRepository) Save(
	_ context.Context,
	userID string,
	configs []entities.TrackedConfiguration,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := append([]entities.TrackedConfiguration{}, configs...)
	s.SaveCalls = append(s.SaveCalls, SaveCall{UserID: userID, Configs: saved})
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Lists[userID] = saved
	return nil
}

func (s *SpyStateRepository) Users(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UsersErr != nil {
		return nil, s.UsersErr
	}
	users := make([]string, 0, len(s.Lists))
	for userID := range s.Lists {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users, nil
}

func (s *SpyStateRepository) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}
