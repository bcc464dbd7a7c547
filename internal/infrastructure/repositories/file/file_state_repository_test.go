//go:build unit

package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/infrastructure/repositories/file"
	"github.com/rios0rios0/releasewatch/test/domain/entitybuilders"
)

func TestStateRepository(t *testing.T) {
	t.Parallel()

	t.Run("should return an empty list for an unknown user", func(t *testing.T) {
		t.Parallel()

		// given
		repository, err := file.NewStateRepository(t.TempDir())
		require.NoError(t, err)

		// when
		configs, loadErr := repository.Load(context.Background(), "42")

		// then
		require.NoError(t, loadErr)
		assert.NotNil(t, configs)
		assert.Empty(t, configs)
	})

	t.Run("should load exactly what was saved", func(t *testing.T) {
		t.Parallel()

		// given
		repository, err := file.NewStateRepository(t.TempDir())
		require.NoError(t, err)
		configs := []entities.TrackedConfiguration{
			entitybuilders.NewTrackedConfigurationBuilder().
				WithTrackType(entities.TrackDP).
				WithLast("3.0.175.40", "01.08.25").
				BuildTrackedConfiguration(),
		}

		// when
		require.NoError(t, repository.Save(context.Background(), "42", configs))
		loaded, loadErr := repository.Load(context.Background(), "42")

		// then
		require.NoError(t, loadErr)
		assert.Equal(t, configs, loaded)
	})

	t.Run("should read lists written by the previous bot", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "42"), 0o750))
		legacy := `[{"name": "Розница", "last_version": "2.3.21.5", "last_date": "15.09.25", "is_new": false}]`
		require.NoError(t, os.WriteFile(filepath.Join(root, "42", "configs.json"), []byte(legacy), 0o600))
		repository, err := file.NewStateRepository(root)
		require.NoError(t, err)

		// when
		loaded, loadErr := repository.Load(context.Background(), "42")

		// then
		require.NoError(t, loadErr)
		require.Len(t, loaded, 1)
		assert.Equal(t, entities.TrackLatest, loaded[0].Mode())
		assert.Equal(t, "2.3.21.5", loaded[0].LastVersion)
	})

	t.Run("should leave no temporary files behind", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		repository, err := file.NewStateRepository(root)
		require.NoError(t, err)

		// when
		require.NoError(t, repository.Save(context.Background(), "42", nil))

		// then
		entries, readErr := os.ReadDir(filepath.Join(root, "42"))
		require.NoError(t, readErr)
		require.Len(t, entries, 1)
		assert.Equal(t, "configs.json", entries[0].Name())
		info, statErr := entries[0].Info()
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("should reject user ids that leave the storage root", func(t *testing.T) {
		t.Parallel()

		for _, userID := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
			// given
			parent := t.TempDir()
			root := filepath.Join(parent, "state")
			repository, err := file.NewStateRepository(root)
			require.NoError(t, err)

			// when
			saveErr := repository.Save(context.Background(), userID, nil)
			_, loadErr := repository.Load(context.Background(), userID)

			// then
			require.ErrorIs(t, saveErr, file.ErrInvalidUserID, userID)
			require.ErrorIs(t, loadErr, file.ErrInvalidUserID, userID)
			entries, readErr := os.ReadDir(parent)
			require.NoError(t, readErr)
			require.Len(t, entries, 1, userID)
			rootEntries, rootErr := os.ReadDir(root)
			require.NoError(t, rootErr)
			assert.Empty(t, rootEntries, userID)
		}
	})

	t.Run("should list users with a stored list in ascending order", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		repository, err := file.NewStateRepository(root)
		require.NoError(t, err)
		for _, userID := range []string{"300", "200"} {
			require.NoError(t, repository.Save(context.Background(), userID, nil))
		}
		require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o750))

		// when
		users, usersErr := repository.Users(context.Background())

		// then
		require.NoError(t, usersErr)
		assert.Equal(t, []string{"200", "300"}, users)
	})
}
