package entities

import (
	"fmt"
	"strings"
)

// TrackType selects which release track(s) a configuration is diffed against.
type TrackType string

const (
	TrackLatest TrackType = "latest"
	TrackDP     TrackType = "dp"
	TrackBoth   TrackType = "both"

	// trackSeparator joins the latest and LTS halves of a "both" value.
	trackSeparator = "|"
)

// ParseTrackType validates a user-supplied tracking mode.
func ParseTrackType(value string) (TrackType, error) {
	switch t := TrackType(strings.ToLower(strings.TrimSpace(value))); t {
	case TrackLatest, TrackDP, TrackBoth:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tracking mode %q (expected latest, dp or both)", value)
	}
}

// TrackedConfiguration is a configuration a user follows on the release catalog.
//
// For TrackBoth, LastVersion and LastDate are either empty or hold exactly one
// "|" with the latest-track value first and the LTS value second. Other modes
// never contain the separator.
type TrackedConfiguration struct {
	Name        string    `json:"name"`
	TrackType   TrackType `json:"track_type,omitempty"`
	LastVersion string    `json:"last_version"`
	LastDate    string    `json:"last_date"`
	IsNew       bool      `json:"is_new"`
}

// NewTrackedConfiguration creates a configuration that has not been observed yet.
func NewTrackedConfiguration(name string, trackType TrackType) TrackedConfiguration {
	return TrackedConfiguration{Name: name, TrackType: trackType}
}

// Mode returns the tracking mode, treating an unset value as TrackLatest.
func (c TrackedConfiguration) Mode() TrackType {
	if c.TrackType == "" {
		return TrackLatest
	}
	return c.TrackType
}

// IsBaselined reports whether the configuration has been observed at least
// once. A catalog row may carry no date, so only the version counts.
func (c TrackedConfiguration) IsBaselined() bool {
	return c.LastVersion != ""
}

// WithTrackType switches the tracking mode and clears the stored version and
// date so the next check re-baselines the configuration.
func (c TrackedConfiguration) WithTrackType(trackType TrackType) TrackedConfiguration {
	c.TrackType = trackType
	c.LastVersion = ""
	c.LastDate = ""
	return c
}

// SplitPair decodes a "both" value into its latest and LTS halves. A missing
// second half is returned empty.
func SplitPair(value string) (string, string) {
	latest, lts, _ := strings.Cut(value, trackSeparator)
	return latest, lts
}

// JoinPair encodes the latest and LTS halves of a "both" value.
func JoinPair(latest, lts string) string {
	return latest + trackSeparator + lts
}
