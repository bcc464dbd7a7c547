//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
)

// StubCatalogRepository implements repositories.CatalogRepository with canned documents.
type StubCatalogRepository struct {
	// --- FetchCatalog ---
	Catalog           *entities.CatalogDocument
	CatalogErr        error
	FetchCatalogCalls int

	// --- FetchHistory ---
	History      *entities.HistoryDocument
	HistoryErr   error
	HistoryNames []string
}

var _ repositories.CatalogRepository = (*StubCatalogRepository)(nil)

func (s *StubCatalogRepository) FetchCatalog(_ context.Context) (*entities.CatalogDocument, error) {
	s.FetchCatalogCalls++
	return s.Catalog, s.CatalogErr
}

func (s *StubCatalogRepository) FetchHistory(
	_ context.Context,
	row entities.CatalogRow,
) (*entities.HistoryDocument, error) {
	s.HistoryNames = append(s.HistoryNames, row.Name)
	return s.History, s.HistoryErr
}
