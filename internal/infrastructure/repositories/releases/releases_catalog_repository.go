package releases

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
)

// CatalogRepository implements repositories.CatalogRepository over the release
// portal's HTML pages. One instance holds one authenticated session.
type CatalogRepository struct {
	cfg    entities.PortalConfig
	client *portalClient
}

// NewCatalogRepository creates a portal-backed catalog repository.
func NewCatalogRepository(cfg entities.PortalConfig) (repositories.CatalogRepository, error) {
	client, err := newPortalClient(cfg)
	if err != nil {
		return nil, err
	}
	return &CatalogRepository{cfg: cfg, client: client}, nil
}

// FetchCatalog logs in if needed and reads the release catalog table.
func (r *CatalogRepository) FetchCatalog(ctx context.Context) (*entities.CatalogDocument, error) {
	if err := r.client.ensureSession(ctx); err != nil {
		return nil, err
	}

	doc, err := r.client.getDocument(ctx, r.cfg.ReleasesURL)
	if err != nil {
		return nil, err
	}
	catalog, err := parseCatalog(doc)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Release catalog has %d rows", len(catalog.Rows))
	return catalog, nil
}

// FetchHistory follows the row's link to its release page, expands it to all
// updates when the page offers it and reads the history table.
func (r *CatalogRepository) FetchHistory(
	ctx context.Context,
	row entities.CatalogRow,
) (*entities.HistoryDocument, error) {
	if row.HistoryPath == "" {
		return nil, fmt.Errorf("%w: %q has no release page link", entities.ErrMalformedSource, row.Name)
	}
	if err := r.client.ensureSession(ctx); err != nil {
		return nil, err
	}

	pageURL, err := resolve(r.cfg.BaseURL, row.HistoryPath)
	if err != nil {
		return nil, err
	}
	page, err := r.client.getDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if href := findAllUpdatesHref(page); href != "" {
		allUpdatesURL, resolveErr := resolve(pageURL, href)
		if resolveErr != nil {
			return nil, resolveErr
		}
		logger.Debugf("Expanding release history of %q via %s", row.Name, allUpdatesURL)
		if page, err = r.client.getDocument(ctx, allUpdatesURL); err != nil {
			return nil, err
		}
	}

	return parseHistory(page)
}
