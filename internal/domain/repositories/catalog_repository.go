package repositories

import (
	"context"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// CatalogRepository abstracts the vendor release portal. Implementations own
// session acquisition: every call authenticates as needed, and a failure to do
// so is reported wrapping entities.ErrNetworkFailure.
type CatalogRepository interface {
	// FetchCatalog returns the release catalog with one row per configuration.
	FetchCatalog(ctx context.Context) (*entities.CatalogDocument, error)

	// FetchHistory returns the upgrade-history table linked from a catalog row.
	// It returns entities.ErrMalformedSource when the row has no release page
	// link or the history table is missing.
	FetchHistory(ctx context.Context, row entities.CatalogRow) (*entities.HistoryDocument, error)
}
