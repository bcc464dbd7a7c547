package entities

import "fmt"

// DiffStatus is the display-only verdict of a check for one configuration.
type DiffStatus int

const (
	StatusNotFound DiffStatus = iota
	StatusFirstObservation
	StatusChanged
	StatusUnchanged
	StatusPending // unchanged, but an earlier change was not acknowledged yet
)

func (s DiffStatus) String() string {
	switch s {
	case StatusNotFound:
		return "not found"
	case StatusFirstObservation:
		return "first check"
	case StatusChanged:
		return "NEW VERSION!"
	case StatusUnchanged:
		return "no changes"
	case StatusPending:
		return "NEW VERSION! (awaiting acknowledgment)"
	default:
		return fmt.Sprintf("DiffStatus(%d)", int(s))
	}
}

// Label is a stable snake_case identifier for metrics and logs.
func (s DiffStatus) Label() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusFirstObservation:
		return "first_observation"
	case StatusChanged:
		return "changed"
	case StatusUnchanged:
		return "unchanged"
	case StatusPending:
		return "pending"
	default:
		return "unknown"
	}
}

// DiffResult is the outcome of diffing one configuration against the catalog.
type DiffResult struct {
	Config TrackedConfiguration
	Status DiffStatus
}

// halfVerdict is the outcome of the three-way rule on a single stored value.
type halfVerdict int

const (
	verdictFirst halfVerdict = iota
	verdictChanged
	verdictSame
)

//nolint:gochecknoglobals // immutable sentinel
var noDataObservation = VersionObservation{Version: NoData, Date: NoData}

// DiffAll diffs every configuration of a user against the catalog, preserving
// list order. Configurations missing from the catalog are reported as
// StatusNotFound and left untouched. A malformed catalog row aborts the whole
// check so no partial state is produced.
func DiffAll(configs []TrackedConfiguration, catalog *Catalog) ([]DiffResult, error) {
	results := make([]DiffResult, 0, len(configs))
	for _, config := range configs {
		row, found := catalog.Find(config.Name)
		if !found {
			results = append(results, DiffResult{Config: config, Status: StatusNotFound})
			continue
		}

		observations, err := ExtractObservations(row)
		if err != nil {
			return nil, fmt.Errorf("failed to read versions of %q: %w", config.Name, err)
		}
		results = append(results, DiffConfiguration(config, observations))
	}
	return results, nil
}

// DiffConfiguration applies the tracking-mode state machine to one configuration.
func DiffConfiguration(config TrackedConfiguration, observations Observations) DiffResult {
	latest := observationOrNoData(observations.Latest())
	lts := latest
	if o := observations.LTS(); o != nil {
		lts = *o
	}

	switch config.Mode() {
	case TrackDP:
		return diffSingle(config, lts)
	case TrackBoth:
		return diffBoth(config, latest, lts)
	default:
		return diffSingle(config, latest)
	}
}

func diffSingle(config TrackedConfiguration, target VersionObservation) DiffResult {
	version, verdict := applyThreeWay(config.LastVersion, target.Version)
	config.LastVersion = version
	config.LastDate = target.Date
	if verdict == verdictChanged {
		config.IsNew = true
	}
	return DiffResult{Config: config, Status: statusFor(config, verdict)}
}

func diffBoth(config TrackedConfiguration, latest, lts VersionObservation) DiffResult {
	oldLatest, oldLTS := SplitPair(config.LastVersion)
	newLatest, latestVerdict := applyThreeWay(oldLatest, latest.Version)
	newLTS, ltsVerdict := applyThreeWay(oldLTS, lts.Version)

	config.LastVersion = JoinPair(newLatest, newLTS)
	config.LastDate = JoinPair(latest.Date, lts.Date)

	verdict := verdictSame
	switch {
	case latestVerdict == verdictChanged || ltsVerdict == verdictChanged:
		verdict = verdictChanged
		config.IsNew = true
	case latestVerdict == verdictFirst || ltsVerdict == verdictFirst:
		verdict = verdictFirst
	}
	return DiffResult{Config: config, Status: statusFor(config, verdict)}
}

// applyThreeWay returns the value to store and the verdict: an empty stored value
// is a first observation, a different one is a change, an equal one is a no-op.
func applyThreeWay(stored, fresh string) (string, halfVerdict) {
	switch {
	case stored == "":
		return fresh, verdictFirst
	case stored != fresh:
		return fresh, verdictChanged
	default:
		return stored, verdictSame
	}
}

func statusFor(config TrackedConfiguration, verdict halfVerdict) DiffStatus {
	switch verdict {
	case verdictFirst:
		return StatusFirstObservation
	case verdictChanged:
		return StatusChanged
	default:
		if config.IsNew {
			return StatusPending
		}
		return StatusUnchanged
	}
}

func observationOrNoData(o *VersionObservation) VersionObservation {
	if o == nil {
		return noDataObservation
	}
	return *o
}
