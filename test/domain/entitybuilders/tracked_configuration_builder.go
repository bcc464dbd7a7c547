//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// TrackedConfigurationBuilder helps create tracked configurations with a fluent interface.
type TrackedConfigurationBuilder struct {
	*testkit.BaseBuilder
	name        string
	trackType   entities.TrackType
	lastVersion string
	lastDate    string
	isNew       bool
}

// NewTrackedConfigurationBuilder creates a builder for an un-baselined "latest" entry.
func NewTrackedConfigurationBuilder() *TrackedConfigurationBuilder {
	return &TrackedConfigurationBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "Бухгалтерия предприятия",
		trackType:   entities.TrackLatest,
	}
}

// WithName sets the configuration name.
func (b *TrackedConfigurationBuilder) WithName(name string) *TrackedConfigurationBuilder {
	b.name = name
	return b
}

// WithTrackType sets the tracking mode.
func (b *TrackedConfigurationBuilder) WithTrackType(trackType entities.TrackType) *TrackedConfigurationBuilder {
	b.trackType = trackType
	return b
}

// WithLast sets the last observed version and date.
func (b *TrackedConfigurationBuilder) WithLast(version, date string) *TrackedConfigurationBuilder {
	b.lastVersion = version
	b.lastDate = date
	return b
}

// WithIsNew sets the unacknowledged-change flag.
func (b *TrackedConfigurationBuilder) WithIsNew(isNew bool) *TrackedConfigurationBuilder {
	b.isNew = isNew
	return b
}

// Build creates the configuration (satisfies testkit.Builder interface).
func (b *TrackedConfigurationBuilder) Build() interface{} {
	return b.BuildTrackedConfiguration()
}

// BuildTrackedConfiguration creates the configuration with a concrete return type.
func (b *TrackedConfigurationBuilder) BuildTrackedConfiguration() entities.TrackedConfiguration {
	return entities.TrackedConfiguration{
		Name:        b.name,
		TrackType:   b.trackType,
		LastVersion: b.lastVersion,
		LastDate:    b.lastDate,
		IsNew:       b.isNew,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *TrackedConfigurationBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "Бухгалтерия предприятия"
	b.trackType = entities.TrackLatest
	b.lastVersion = ""
	b.lastDate = ""
	b.isNew = false
	return b
}

// Clone creates a deep copy of the TrackedConfigurationBuilder.
func (b *TrackedConfigurationBuilder) Clone() testkit.Builder {
	return &TrackedConfigurationBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		trackType:   b.trackType,
		lastVersion: b.lastVersion,
		lastDate:    b.lastDate,
		isNew:       b.isNew,
	}
}
