package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultLoginURL        = "https://login.1c.ru/login"
	defaultReleasesURL     = "https://releases.1c.ru/total"
	defaultBaseURL         = "https://releases.1c.ru"
	defaultTimeout         = 60 * time.Second
	defaultRetryMax        = 2
	defaultRequestsPerSec  = 2.0
	defaultStorageBackend  = "badger"
	defaultStoragePath     = "data/user_data"
	settingsValidatorField = "yaml"
)

// Settings is the top-level configuration for releasewatch.
type Settings struct {
	Portal  PortalConfig  `yaml:"portal"`
	Storage StorageConfig `yaml:"storage"`
	Path    PathConfig    `yaml:"path"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// PortalConfig holds the release portal endpoints and credentials.
type PortalConfig struct {
	LoginURL          string        `yaml:"login_url"           validate:"required,url"`
	ReleasesURL       string        `yaml:"releases_url"        validate:"required,url"`
	BaseURL           string        `yaml:"base_url"            validate:"required,url"`
	Username          string        `yaml:"username"            validate:"required"` // Inline, ${ENV_VAR}, or file path
	Password          string        `yaml:"password"            validate:"required"` // Inline, ${ENV_VAR}, or file path
	Timeout           time.Duration `yaml:"timeout"             validate:"gte=0"`
	RetryMax          int           `yaml:"retry_max"           validate:"gte=0,lte=10"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0"`
}

// StorageConfig selects where per-user state lives.
type StorageConfig struct {
	Backend string `yaml:"backend" validate:"oneof=badger file"`
	Path    string `yaml:"path"    validate:"required"`
}

// PathConfig tunes upgrade-path resolution.
type PathConfig struct {
	MaxSteps int `yaml:"max_steps" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus textfile export written after each run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var settingsValidate = newSettingsValidator()

func newSettingsValidator() *validator.Validate {
	v := validator.New()
	// report yaml keys instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get(settingsValidatorField), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewSettings reads and parses a configuration file, applies defaults, expands
// environment variables in credentials and validates the result.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings builds Settings from raw YAML.
func ParseSettings(data []byte) (*Settings, error) {
	// absent keys keep these values; zero is a valid retry count
	settings := Settings{Portal: PortalConfig{RetryMax: defaultRetryMax}}
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.applyDefaults()
	settings.Portal.Username = ResolveSecret(settings.Portal.Username)
	settings.Portal.Password = ResolveSecret(settings.Portal.Password)

	if validateErr := ValidateSettings(&settings); validateErr != nil {
		return nil, validateErr
	}
	return &settings, nil
}

// ValidateSettings checks required values and bounds.
func ValidateSettings(settings *Settings) error {
	if err := settingsValidate.Struct(settings); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf(
				"invalid configuration: %s failed the %q rule",
				strings.TrimPrefix(first.Namespace(), "Settings."), first.Tag(),
			)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Portal.LoginURL == "" {
		s.Portal.LoginURL = defaultLoginURL
	}
	if s.Portal.ReleasesURL == "" {
		s.Portal.ReleasesURL = defaultReleasesURL
	}
	if s.Portal.BaseURL == "" {
		s.Portal.BaseURL = defaultBaseURL
	}
	if s.Portal.Timeout == 0 {
		s.Portal.Timeout = defaultTimeout
	}
	if s.Portal.RequestsPerSecond == 0 {
		s.Portal.RequestsPerSecond = defaultRequestsPerSec
	}
	if s.Storage.Backend == "" {
		s.Storage.Backend = defaultStorageBackend
	}
	if s.Storage.Path == "" {
		s.Storage.Path = defaultStoragePath
	}
	if s.Path.MaxSteps == 0 {
		s.Path.MaxSteps = DefaultMaxSteps
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".releasewatch.yaml",
		".releasewatch.yml",
		"releasewatch.yaml",
		"releasewatch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveSecret expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the secret from the file.
func ResolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read secret from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
