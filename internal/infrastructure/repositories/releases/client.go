package releases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

const (
	userAgent             = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	invalidCredentialsMsg = "Неверный логин или пароль"
	retryWaitMin          = 1 * time.Second
	retryWaitMax          = 10 * time.Second
	sessionKey            = "session"
)

// portalClient is an authenticated HTTP session against the release portal.
// The cookie jar carries the session once login succeeded.
type portalClient struct {
	cfg     entities.PortalConfig
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logins  singleflight.Group

	mu       sync.Mutex
	loggedIn bool
}

func newPortalClient(cfg entities.PortalConfig) (*portalClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create the session cookie jar: %w", err)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.HTTPClient.Jar = jar
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = &retryLogger{entry: logger.WithField("component", "releases")}

	return &portalClient{
		cfg:     cfg,
		http:    client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// ensureSession logs in once per client; concurrent callers share the attempt.
func (c *portalClient) ensureSession(ctx context.Context) error {
	c.mu.Lock()
	done := c.loggedIn
	c.mu.Unlock()
	if done {
		return nil
	}

	_, err, _ := c.logins.Do(sessionKey, func() (interface{}, error) {
		if loginErr := c.login(ctx); loginErr != nil {
			return nil, loginErr
		}
		c.mu.Lock()
		c.loggedIn = true
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

func (c *portalClient) login(ctx context.Context) error {
	logger.Debugf("Logging in to %s", c.cfg.LoginURL)

	page, err := c.getDocument(ctx, c.cfg.LoginURL)
	if err != nil {
		return err
	}
	token, ok := findExecutionToken(page)
	if !ok {
		return fmt.Errorf("%w: login form token not found", entities.ErrNetworkFailure)
	}

	form := url.Values{
		"username":   {c.cfg.Username},
		"password":   {c.cfg.Password},
		"execution":  {token},
		"_eventId":   {"submit"},
		"rememberMe": {"on"},
	}
	body, err := c.do(ctx, http.MethodPost, c.cfg.LoginURL, []byte(form.Encode()))
	if err != nil {
		return err
	}
	if strings.Contains(string(body), invalidCredentialsMsg) {
		return fmt.Errorf("%w: invalid username or password", entities.ErrNetworkFailure)
	}

	logger.Info("Logged in to the release portal")
	return nil
}

// getDocument fetches and parses an HTML page.
func (c *portalClient) getDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := c.do(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", entities.ErrMalformedSource, pageURL, err)
	}
	return doc, nil
}

// do performs one paced request and returns the response body. Every failure
// wraps entities.ErrNetworkFailure.
func (c *portalClient) do(ctx context.Context, method, target string, form []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrNetworkFailure, err)
	}

	var body interface{}
	if form != nil {
		body = form
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", entities.ErrNetworkFailure, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", entities.ErrNetworkFailure, method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%w: %s %s: unexpected status code: %d",
			entities.ErrNetworkFailure, method, target, resp.StatusCode,
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", entities.ErrNetworkFailure, target, err)
	}
	return data, nil
}

// resolve builds an absolute URL for a link found on a portal page.
func resolve(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: invalid link %q: %w", entities.ErrMalformedSource, ref, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// retryLogger routes retryablehttp's leveled logging into logrus.
type retryLogger struct {
	entry *logger.Entry
}

func (l *retryLogger) fields(keysAndValues []interface{}) *logger.Entry {
	fields := logger.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
