package entities

import (
	"fmt"
	"strings"
)

// DefaultMaxSteps bounds the upgrade walk so cyclic histories still terminate.
const DefaultMaxSteps = 100

// PathResult is the answer to an upgrade-path query.
type PathResult struct {
	Start  string
	Target string
	Hops   int
	Note   string // set when the non-LTS target replaced the LTS one
}

// ResolvePath walks forward from start to target, one transition per hop,
// only through versions in reachable. Among the valid transitions the one
// leading to the numerically greatest version is taken; ties keep the first in
// history order.
//
// It fails with *NoPathError when no valid transition leaves the current
// version and with *TruncatedError when maxSteps hops did not reach target.
func ResolvePath(
	graph *TransitionGraph,
	reachable map[string]struct{},
	start, target string,
	maxSteps int,
) (int, error) {
	current := start
	hops := 0
	for current != target {
		if hops >= maxSteps {
			return hops, &TruncatedError{Reached: current, Hops: hops}
		}

		next, ok := nextStep(graph.Forward[current], reachable)
		if !ok {
			return hops, &NoPathError{Start: start, Reached: current, Hops: hops}
		}
		current = next
		hops++
	}
	return hops, nil
}

func nextStep(transitions []Transition, reachable map[string]struct{}) (string, bool) {
	var (
		best    string
		bestKey VersionKey
		found   bool
	)
	for _, t := range transitions {
		if _, ok := reachable[t.To]; !ok {
			continue
		}
		key := ToVersionKey(t.To)
		if !found || key.Compare(bestKey) > 0 {
			best, bestKey, found = t.To, key, true
		}
	}
	return best, found
}

// ChoosePathTarget returns the LTS target unless start is already newer than it,
// in which case the non-LTS target is used and a note explains the swap.
func ChoosePathTarget(start string, targets Targets) (string, string) {
	if IsVersionGreater(start, targets.LTS) {
		note := fmt.Sprintf(
			"version %s is newer than the long-term-support version %s; "+
				"counting up to the non-LTS version instead",
			start, targets.LTS,
		)
		return targets.NonLTS, note
	}
	return targets.LTS, ""
}

// ComputePath answers an upgrade-path query over a history document.
func ComputePath(
	history *HistoryDocument,
	startVersion string,
	targets Targets,
	maxSteps int,
) (*PathResult, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	start := strings.TrimSpace(startVersion)
	target, note := ChoosePathTarget(start, targets)
	result := &PathResult{Start: start, Target: target, Note: note}
	if start == target {
		return result, nil
	}

	graph := BuildTransitionGraph(ParseHistoryRows(history))
	hops, err := ResolvePath(graph, graph.ReachableTo(target), start, target, maxSteps)
	result.Hops = hops
	return result, err
}
