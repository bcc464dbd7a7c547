package entities

import (
	"fmt"
	"strings"
)

const awaitingFirstCheck = "awaiting first check"

// FormatDiffResults renders the outcome of a check as plain text, one block per
// configuration in list order.
func FormatDiffResults(results []DiffResult) string {
	blocks := make([]string, 0, len(results))
	for _, result := range results {
		if result.Status == StatusNotFound {
			blocks = append(blocks, fmt.Sprintf("%s\n  └ not found in the release catalog", result.Config.Name))
			continue
		}
		blocks = append(blocks, formatBlock(result.Config, result.Status.String()))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatStoredConfigurations renders the last known state without checking the
// catalog.
func FormatStoredConfigurations(configs []TrackedConfiguration) string {
	if len(configs) == 0 {
		return "No configurations are tracked yet."
	}

	blocks := make([]string, 0, len(configs))
	for _, config := range configs {
		status := StatusUnchanged.String()
		switch {
		case !config.IsBaselined():
			status = awaitingFirstCheck
		case config.IsNew:
			status = StatusPending.String()
		}
		blocks = append(blocks, formatBlock(config, status))
	}
	return strings.Join(blocks, "\n\n")
}

func formatBlock(config TrackedConfiguration, status string) string {
	version, date := NoData, NoData
	switch {
	case !config.IsBaselined():
	case config.Mode() == TrackBoth:
		latestVersion, ltsVersion := SplitPair(config.LastVersion)
		latestDate, ltsDate := SplitPair(config.LastDate)
		version = fmt.Sprintf("%s (latest) / %s (DP)", orNoData(latestVersion), orNoData(ltsVersion))
		date = fmt.Sprintf("%s / %s", orNoData(latestDate), orNoData(ltsDate))
	default:
		version, date = config.LastVersion, orNoData(config.LastDate)
	}

	return fmt.Sprintf(
		"%s [%s]\n  └ Version: %s, Date: %s\n  └ Status: %s",
		config.Name, config.Mode(), version, date, status,
	)
}

func orNoData(value string) string {
	if value == "" {
		return NoData
	}
	return value
}

// FormatPathResult renders the answer to an upgrade-path query.
func FormatPathResult(result *PathResult) string {
	var b strings.Builder
	if result.Note != "" {
		b.WriteString(result.Note)
		b.WriteString("\n\n")
	}
	if result.Hops == 0 && result.Start == result.Target {
		fmt.Fprintf(&b, "Version %s is already the target version %s.", result.Start, result.Target)
		return b.String()
	}
	fmt.Fprintf(&b, "From version %s to target %s: %d upgrades are required.",
		result.Start, result.Target, result.Hops)
	return b.String()
}
