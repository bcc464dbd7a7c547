package entities

import (
	"fmt"
	"strings"
)

const (
	// NoData is the placeholder used for versions and dates the catalog did not provide.
	NoData = "no data"

	ltsMarkerTag   = "sup"
	ltsTitlePhrase = "Длительная"
)

// VersionObservation is a single version entry read from the catalog.
type VersionObservation struct {
	Version string
	Date    string
	IsLTS   bool
}

// Observations is the ordered list of entries of one catalog row. The first
// entry is the catalog's primary ("latest") release.
type Observations []VersionObservation

// Latest returns the first observation or nil when the list is empty.
func (o Observations) Latest() *VersionObservation {
	if len(o) == 0 {
		return nil
	}
	return &o[0]
}

// LTS returns the first long-term-support observation or nil if there is none.
func (o Observations) LTS() *VersionObservation {
	for i := range o {
		if o[i].IsLTS {
			return &o[i]
		}
	}
	return nil
}

// IsLTSMarker classifies the element following a version link: the catalog marks
// long-term-support releases with a <sup> holding an <abbr> titled
// "Длительная поддержка".
func IsLTSMarker(marker *SiblingMarker) bool {
	if marker == nil || !strings.EqualFold(marker.Tag, ltsMarkerTag) {
		return false
	}
	for _, title := range marker.AbbrTitles {
		if strings.Contains(title, ltsTitlePhrase) {
			return true
		}
	}
	return false
}

// ExtractObservations converts one catalog row into its version observations, in
// the row's left-to-right order. Missing dates are replaced with NoData.
func ExtractObservations(row CatalogRow) (Observations, error) {
	if !row.HasVersionCell {
		return nil, fmt.Errorf("%w: row %q has no version cell", ErrMalformedSource, row.Name)
	}

	if len(row.Version.Links) == 0 {
		text := strings.TrimSpace(row.Version.Text)
		if text == "" {
			return Observations{}, nil
		}
		return Observations{{
			Version: text,
			Date:    strings.TrimSpace(row.Dates.Text),
			IsLTS:   false,
		}}, nil
	}

	observations := make(Observations, 0, len(row.Version.Links))
	for i, link := range row.Version.Links {
		date := NoData
		if i < len(row.Dates.Dates) {
			date = row.Dates.Dates[i]
		}
		observations = append(observations, VersionObservation{
			Version: strings.TrimSpace(link.Text),
			Date:    date,
			IsLTS:   IsLTSMarker(link.Marker),
		})
	}
	return observations, nil
}

// Targets are the newest long-term-support and non-LTS versions of a row.
type Targets struct {
	LTS    string
	NonLTS string
}

// ResolveTargets picks the greatest LTS and greatest non-LTS version of a row.
// When one track is missing it falls back to the other.
func ResolveTargets(observations Observations) (Targets, error) {
	var lts, nonLTS []string
	for _, o := range observations {
		if o.IsLTS {
			lts = append(lts, o.Version)
		} else {
			nonLTS = append(nonLTS, o.Version)
		}
	}

	bestLTS, hasLTS := MaxVersion(lts)
	bestNonLTS, hasNonLTS := MaxVersion(nonLTS)
	switch {
	case !hasLTS && !hasNonLTS:
		return Targets{}, fmt.Errorf("%w: no current version in the catalog row", ErrMalformedSource)
	case !hasLTS:
		bestLTS = bestNonLTS
	case !hasNonLTS:
		bestNonLTS = bestLTS
	}
	return Targets{LTS: bestLTS, NonLTS: bestNonLTS}, nil
}
