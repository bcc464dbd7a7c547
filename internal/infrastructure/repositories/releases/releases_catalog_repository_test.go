//go:build unit

package releases_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
	"github.com/rios0rios0/releasewatch/internal/infrastructure/repositories/releases"
)

const sessionCookie = "CASTGC"

// fakePortal serves the login flow, the catalog and one history page.
type fakePortal struct {
	t        *testing.T
	logins   atomic.Int32
	catalogs atomic.Int32
}

func (p *fakePortal) serveFixture(w http.ResponseWriter, name string) {
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if !assert.NoError(p.t, err) {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (p *fakePortal) authorized(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookie)
	return err == nil && cookie.Value == "TGT-1"
}

func (p *fakePortal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/login" && r.Method == http.MethodGet:
		p.serveFixture(w, "login.html")
	case r.URL.Path == "/login" && r.Method == http.MethodPost:
		p.logins.Add(1)
		if r.FormValue("execution") != "e1s1-token" || r.FormValue("password") != "its-password" {
			_, _ = w.Write([]byte("<html><body>Неверный логин или пароль</body></html>"))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "TGT-1", Path: "/"})
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	case !p.authorized(r):
		w.WriteHeader(http.StatusForbidden)
	case r.URL.Path == "/total":
		p.catalogs.Add(1)
		p.serveFixture(w, "total.html")
	case r.URL.Path == "/project/Accounting30" && r.URL.Query().Get("allUpdates") == "true":
		p.serveFixture(w, "history_all.html")
	case r.URL.Path == "/project/Accounting30":
		p.serveFixture(w, "history.html")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newPortal(t *testing.T) (*fakePortal, entities.PortalConfig) {
	t.Helper()
	portal := &fakePortal{t: t}
	server := httptest.NewServer(portal)
	t.Cleanup(server.Close)

	return portal, entities.PortalConfig{
		LoginURL:          server.URL + "/login",
		ReleasesURL:       server.URL + "/total",
		BaseURL:           server.URL,
		Username:          "its-user",
		Password:          "its-password",
		Timeout:           5 * time.Second,
		RetryMax:          0,
		RequestsPerSecond: 1000,
	}
}

func newRepository(t *testing.T, cfg entities.PortalConfig) repositories.CatalogRepository {
	t.Helper()
	repository, err := releases.NewCatalogRepository(cfg)
	require.NoError(t, err)
	return repository
}

func TestCatalogRepositoryFetchCatalog(t *testing.T) {
	t.Parallel()

	t.Run("should log in once and read the catalog", func(t *testing.T) {
		t.Parallel()

		// given
		portal, cfg := newPortal(t)
		repository := newRepository(t, cfg)

		// when
		first, err := repository.FetchCatalog(context.Background())
		require.NoError(t, err)
		second, err := repository.FetchCatalog(context.Background())

		// then
		require.NoError(t, err)
		assert.Len(t, first.Rows, 3)
		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), portal.logins.Load())
	})

	t.Run("should report rejected credentials as a network failure", func(t *testing.T) {
		t.Parallel()

		// given
		_, cfg := newPortal(t)
		cfg.Password = "wrong"
		repository := newRepository(t, cfg)

		// when
		_, err := repository.FetchCatalog(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrNetworkFailure)
		assert.Contains(t, err.Error(), "invalid username or password")
	})

	t.Run("should report an unreachable portal as a network failure", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		repository := newRepository(t, entities.PortalConfig{
			LoginURL:          server.URL + "/login",
			ReleasesURL:       server.URL + "/total",
			BaseURL:           server.URL,
			Timeout:           time.Second,
			RequestsPerSecond: 1000,
		})

		// when
		_, err := repository.FetchCatalog(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrNetworkFailure)
	})
}

func TestCatalogRepositoryFetchHistory(t *testing.T) {
	t.Parallel()

	accounting := entities.CatalogRow{Name: "Бухгалтерия предприятия", HistoryPath: "/project/Accounting30"}

	t.Run("should follow the all-updates link without reading the catalog", func(t *testing.T) {
		t.Parallel()

		// given
		portal, cfg := newPortal(t)
		repository := newRepository(t, cfg)

		// when
		history, err := repository.FetchHistory(context.Background(), accounting)

		// then
		require.NoError(t, err)
		assert.Len(t, history.Rows, 5)
		assert.Equal(t, int32(1), portal.logins.Load())
		assert.Zero(t, portal.catalogs.Load())
	})

	t.Run("should report configurations without a release page", func(t *testing.T) {
		t.Parallel()

		// given
		portal, cfg := newPortal(t)
		repository := newRepository(t, cfg)

		// when
		_, err := repository.FetchHistory(context.Background(), entities.CatalogRow{Name: "Архивная конфигурация"})

		// then
		require.ErrorIs(t, err, entities.ErrMalformedSource)
		assert.Zero(t, portal.logins.Load())
	})

	t.Run("should report a missing release page as a network failure", func(t *testing.T) {
		t.Parallel()

		// given
		_, cfg := newPortal(t)
		repository := newRepository(t, cfg)

		// when
		_, err := repository.FetchHistory(context.Background(), entities.CatalogRow{
			Name:        "Розница",
			HistoryPath: "/project/Retail23",
		})

		// then
		require.ErrorIs(t, err, entities.ErrNetworkFailure)
	})
}
