//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasewatch/internal/domain/commands"
	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	doubles "github.com/rios0rios0/releasewatch/test/infrastructure/repositorydoubles"
)

func accountingHistory() *entities.HistoryDocument {
	row := func(to, from string) entities.HistoryRow {
		return entities.HistoryRow{Cells: []string{to, "01.01.25", from}}
	}
	return &entities.HistoryDocument{Rows: []entities.HistoryRow{
		row("3.0.180.20", "3.0.175.40"),
		row("3.0.175.40", "3.0.172.5, 3.0.170.1"),
		row("3.0.172.5", "3.0.170.1"),
	}}
}

func TestPathCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should count the hops up to the LTS release", func(t *testing.T) {
		t.Parallel()

		// given
		catalog := &doubles.StubCatalogRepository{Catalog: accountingCatalog(), History: accountingHistory()}
		metrics := commands.NewMetrics()
		cmd := commands.NewPathCommand(factoryFor(catalog), metrics)

		// when
		result, err := cmd.Execute(context.Background(), newSettings(), commands.PathOptions{
			ConfigurationName: "бухгалтерия предприятия",
			StartVersion:      "3.0.170.1",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "3.0.175.40", result.Target)
		assert.Equal(t, 1, result.Hops)
		assert.Empty(t, result.Note)
		assert.Equal(t, []string{"Бухгалтерия предприятия"}, catalog.HistoryNames)
		assert.Equal(t, 1, catalog.FetchCatalogCalls)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.PathQueriesCounter("found")), 0)
	})

	t.Run("should switch to the latest release when the start is past the LTS one", func(t *testing.T) {
		t.Parallel()

		// given
		catalog := &doubles.StubCatalogRepository{Catalog: accountingCatalog(), History: accountingHistory()}
		cmd := commands.NewPathCommand(factoryFor(catalog), commands.NewMetrics())

		// when
		result, err := cmd.Execute(context.Background(), newSettings(), commands.PathOptions{
			ConfigurationName: "Бухгалтерия предприятия",
			StartVersion:      "3.0.176.1",
		})

		// then
		var noPath *entities.NoPathError
		require.ErrorAs(t, err, &noPath)
		assert.Equal(t, "3.0.180.20", result.Target)
		assert.NotEmpty(t, result.Note)
	})

	t.Run("should report an unknown configuration", func(t *testing.T) {
		t.Parallel()

		// given
		catalog := &doubles.StubCatalogRepository{Catalog: accountingCatalog()}
		metrics := commands.NewMetrics()
		cmd := commands.NewPathCommand(factoryFor(catalog), metrics)

		// when
		_, err := cmd.Execute(context.Background(), newSettings(), commands.PathOptions{
			ConfigurationName: "Управление холдингом",
			StartVersion:      "1.0.1.1",
		})

		// then
		require.ErrorIs(t, err, entities.ErrNotFound)
		assert.Nil(t, catalog.HistoryNames)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.PathQueriesCounter("error")), 0)
	})

	t.Run("should count a dead end as no path", func(t *testing.T) {
		t.Parallel()

		// given
		catalog := &doubles.StubCatalogRepository{Catalog: accountingCatalog(), History: accountingHistory()}
		metrics := commands.NewMetrics()
		cmd := commands.NewPathCommand(factoryFor(catalog), metrics)

		// when
		result, err := cmd.Execute(context.Background(), newSettings(), commands.PathOptions{
			ConfigurationName: "Бухгалтерия предприятия",
			StartVersion:      "3.0.100.1",
		})

		// then
		var noPath *entities.NoPathError
		require.ErrorAs(t, err, &noPath)
		assert.Zero(t, result.Hops)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.PathQueriesCounter("no_path")), 0)
	})

	t.Run("should require a start version", func(t *testing.T) {
		t.Parallel()

		// given
		catalog := &doubles.StubCatalogRepository{Catalog: accountingCatalog()}
		cmd := commands.NewPathCommand(factoryFor(catalog), commands.NewMetrics())

		// when
		_, err := cmd.Execute(context.Background(), newSettings(), commands.PathOptions{
			ConfigurationName: "Бухгалтерия предприятия",
			StartVersion:      "  ",
		})

		// then
		require.Error(t, err)
		assert.Zero(t, catalog.FetchCatalogCalls)
	})
}
