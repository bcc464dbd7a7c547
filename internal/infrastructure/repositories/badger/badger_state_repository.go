// Package badger persists tracked configurations in an embedded BadgerDB.
//
// Each user's list is one JSON value under "user/<id>/configs", so replacing a
// list is a single-key transaction and readers never observe a partial write.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
)

const (
	backendName   = "badger"
	userKeyPrefix = "user/"
	configsSuffix = "/configs"
	dirMode       = 0o750
)

// Config holds configuration for the BadgerDB instance.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence), for tests.
	InMemory bool

	// SyncWrites makes every commit durable before Save returns.
	SyncWrites bool
}

// StateRepository implements repositories.StateRepository on BadgerDB.
type StateRepository struct {
	db *badger.DB
}

// NewStateRepository opens (or creates) a persistent store at path.
func NewStateRepository(path string) (repositories.StateRepository, error) {
	return Open(Config{Path: path, SyncWrites: true})
}

// NewInMemoryStateRepository opens a store that lives only as long as the process.
func NewInMemoryStateRepository() (*StateRepository, error) {
	return Open(Config{InMemory: true})
}

// Open creates and opens a BadgerDB-backed repository with the given configuration.
func Open(cfg Config) (*StateRepository, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, dirMode); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{entry: logger.WithField("component", backendName)})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &StateRepository{db: db}, nil
}

func (r *StateRepository) Name() string { return backendName }

// Load returns the stored list or an empty list for an unknown user.
func (r *StateRepository) Load(_ context.Context, userID string) ([]entities.TrackedConfiguration, error) {
	configs := []entities.TrackedConfiguration{}
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &configs)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load state of user %q: %w", userID, err)
	}
	return configs, nil
}

// Save replaces the user's list in a single transaction.
func (r *StateRepository) Save(
	_ context.Context,
	userID string,
	configs []entities.TrackedConfiguration,
) error {
	if configs == nil {
		configs = []entities.TrackedConfiguration{}
	}
	data, err := json.Marshal(configs)
	if err != nil {
		return fmt.Errorf("failed to encode state of user %q: %w", userID, err)
	}

	if updateErr := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(userID), data)
	}); updateErr != nil {
		return fmt.Errorf("failed to save state of user %q: %w", userID, updateErr)
	}
	return nil
}

// Users lists every user with a stored list, in key order.
func (r *StateRepository) Users(_ context.Context) ([]string, error) {
	var users []string
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(userKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			if !strings.HasSuffix(key, configsSuffix) {
				continue
			}
			users = append(users, strings.TrimSuffix(strings.TrimPrefix(key, userKeyPrefix), configsSuffix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *StateRepository) Close() error {
	return r.db.Close()
}

func userKey(userID string) []byte {
	return []byte(userKeyPrefix + userID + configsSuffix)
}

// badgerLogger adapts logrus to BadgerDB's Logger interface. Badger is chatty
// at info level, so info is demoted to debug.
type badgerLogger struct {
	entry *logger.Entry
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.entry.Warnf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.entry.Debugf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(strings.TrimSpace(format), args...)
}
