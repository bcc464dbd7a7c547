package commands

import "github.com/prometheus/client_golang/prometheus"

// CheckResultsCounter exposes the check counter of one status for testing.
func (m *Metrics) CheckResultsCounter(status string) prometheus.Counter {
	return m.checkResults.WithLabelValues(status)
}

// RunsCounter exposes the run counter of one result for testing.
func (m *Metrics) RunsCounter(result string) prometheus.Counter {
	return m.runs.WithLabelValues(result)
}

// PathQueriesCounter exposes the path counter of one outcome for testing.
func (m *Metrics) PathQueriesCounter(outcome string) prometheus.Counter {
	return m.pathQueries.WithLabelValues(outcome)
}

// ApplyTrackRequest exports applyTrackRequest for testing.
var ApplyTrackRequest = applyTrackRequest //nolint:gochecknoglobals // test export
