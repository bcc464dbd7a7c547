//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/test/domain/entitybuilders"
)

func TestDiffConfigurationLatest(t *testing.T) {
	t.Parallel()

	observations := entities.Observations{
		{Version: "1.1", Date: "02.02.25"},
		{Version: "1.0", Date: "01.01.25", IsLTS: true},
	}

	t.Run("should baseline an empty entry without flagging it", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().BuildTrackedConfiguration()

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusFirstObservation, result.Status)
		assert.Equal(t, "1.1", result.Config.LastVersion)
		assert.Equal(t, "02.02.25", result.Config.LastDate)
		assert.False(t, result.Config.IsNew)
	})

	t.Run("should flag a different version as new", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithLast("1.0", "01.01.25").
			BuildTrackedConfiguration()

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusChanged, result.Status)
		assert.Equal(t, "1.1", result.Config.LastVersion)
		assert.True(t, result.Config.IsNew)
	})

	t.Run("should report an unacknowledged change as pending", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithLast("1.1", "02.02.25").
			WithIsNew(true).
			BuildTrackedConfiguration()

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusPending, result.Status)
		assert.Equal(t, config, result.Config)
	})

	t.Run("should leave an unchanged entry as it was", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithLast("1.1", "02.02.25").
			BuildTrackedConfiguration()

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusUnchanged, result.Status)
		assert.Equal(t, config, result.Config)
	})

	t.Run("should be idempotent on the same catalog", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithLast("1.0", "01.01.25").
			BuildTrackedConfiguration()
		first := entities.DiffConfiguration(config, observations)

		// when
		second := entities.DiffConfiguration(first.Config, observations)

		// then
		assert.Equal(t, first.Config, second.Config)
		assert.Equal(t, entities.StatusPending, second.Status)
	})

	t.Run("should store the placeholder when the row has no version", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().BuildTrackedConfiguration()

		// when
		result := entities.DiffConfiguration(config, entities.Observations{})

		// then
		assert.Equal(t, entities.StatusFirstObservation, result.Status)
		assert.Equal(t, entities.NoData, result.Config.LastVersion)
		assert.Equal(t, entities.NoData, result.Config.LastDate)
	})
}

func TestDiffConfigurationDP(t *testing.T) {
	t.Parallel()

	t.Run("should follow the long-term-support release", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithTrackType(entities.TrackDP).
			WithLast("0.9", "01.12.24").
			BuildTrackedConfiguration()
		observations := entities.Observations{
			{Version: "1.1", Date: "02.02.25"},
			{Version: "1.0", Date: "01.01.25", IsLTS: true},
		}

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusChanged, result.Status)
		assert.Equal(t, "1.0", result.Config.LastVersion)
		assert.Equal(t, "01.01.25", result.Config.LastDate)
	})

	t.Run("should fall back to the latest release without an LTS one", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithTrackType(entities.TrackDP).
			BuildTrackedConfiguration()
		observations := entities.Observations{{Version: "1.1", Date: "02.02.25"}}

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusFirstObservation, result.Status)
		assert.Equal(t, "1.1", result.Config.LastVersion)
	})
}

func TestDiffConfigurationBoth(t *testing.T) {
	t.Parallel()

	t.Run("should update only the half that changed", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithTrackType(entities.TrackBoth).
			WithLast("1.0|1.0", "01.01.25|01.01.25").
			BuildTrackedConfiguration()
		observations := entities.Observations{
			{Version: "1.1", Date: "02.02.25"},
			{Version: "1.0", Date: "01.01.25", IsLTS: true},
		}

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusChanged, result.Status)
		assert.Equal(t, "1.1|1.0", result.Config.LastVersion)
		assert.Equal(t, "02.02.25|01.01.25", result.Config.LastDate)
		assert.True(t, result.Config.IsNew)
	})

	t.Run("should baseline both halves of an empty entry", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithTrackType(entities.TrackBoth).
			BuildTrackedConfiguration()
		observations := entities.Observations{{Version: "1.1", Date: "02.02.25"}}

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusFirstObservation, result.Status)
		assert.Equal(t, "1.1|1.1", result.Config.LastVersion)
		assert.Equal(t, "02.02.25|02.02.25", result.Config.LastDate)
		assert.False(t, result.Config.IsNew)
	})

	t.Run("should treat a missing LTS half as a first observation", func(t *testing.T) {
		t.Parallel()

		// given
		config := entitybuilders.NewTrackedConfigurationBuilder().
			WithTrackType(entities.TrackBoth).
			WithLast("1.1", "02.02.25").
			BuildTrackedConfiguration()
		observations := entities.Observations{
			{Version: "1.1", Date: "02.02.25"},
			{Version: "1.0", Date: "01.01.25", IsLTS: true},
		}

		// when
		result := entities.DiffConfiguration(config, observations)

		// then
		assert.Equal(t, entities.StatusFirstObservation, result.Status)
		assert.Equal(t, "1.1|1.0", result.Config.LastVersion)
		assert.False(t, result.Config.IsNew)
	})
}

func TestDiffAll(t *testing.T) {
	t.Parallel()

	t.Run("should keep list order and leave unknown names untouched", func(t *testing.T) {
		t.Parallel()

		// given
		catalog := entities.NewCatalog(&entities.CatalogDocument{Rows: []entities.CatalogRow{
			entitybuilders.NewCatalogRowBuilder().
				WithName("Бухгалтерия предприятия").
				WithRelease("3.0.180.20", "10.10.25").
				BuildCatalogRow(),
		}})
		unknown := entitybuilders.NewTrackedConfigurationBuilder().
			WithName("Несуществующая").
			WithLast("1.0", "01.01.25").
			BuildTrackedConfiguration()
		known := entitybuilders.NewTrackedConfigurationBuilder().BuildTrackedConfiguration()

		// when
		results, err := entities.DiffAll([]entities.TrackedConfiguration{unknown, known}, catalog)

		// then
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, entities.StatusNotFound, results[0].Status)
		assert.Equal(t, unknown, results[0].Config)
		assert.Equal(t, entities.StatusFirstObservation, results[1].Status)
		assert.Equal(t, "3.0.180.20", results[1].Config.LastVersion)
	})

	t.Run("should abort on a malformed catalog row", func(t *testing.T) {
		t.Parallel()

		// given
		catalog := entities.NewCatalog(&entities.CatalogDocument{Rows: []entities.CatalogRow{
			entitybuilders.NewCatalogRowBuilder().WithoutVersionCell().BuildCatalogRow(),
		}})
		config := entitybuilders.NewTrackedConfigurationBuilder().BuildTrackedConfiguration()

		// when
		results, err := entities.DiffAll([]entities.TrackedConfiguration{config}, catalog)

		// then
		require.ErrorIs(t, err, entities.ErrMalformedSource)
		assert.Nil(t, results)
	})
}
