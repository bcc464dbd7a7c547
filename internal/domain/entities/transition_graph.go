package entities

import "strings"

const (
	historyMinCells  = 3
	historyToCell    = 0
	historyFromCell  = 2
	historyLTSMarker = "ДП"
)

// HistoryDocument is the upgrade-history table of one configuration.
type HistoryDocument struct {
	Rows []HistoryRow
}

// HistoryRow holds the trimmed cell texts of a table row and the texts of its
// <small> elements (where the portal marks LTS releases).
type HistoryRow struct {
	Cells      []string
	SmallTexts []string
}

// TransitionRow declares that To can be installed directly over any of From.
type TransitionRow struct {
	To    string
	From  []string
	IsLTS bool
}

// Transition is a single edge of the transition graph.
type Transition struct {
	To    string
	IsLTS bool
}

// TransitionGraph is the directed version graph of one configuration.
type TransitionGraph struct {
	Predecessors map[string][]string
	Forward      map[string][]Transition
}

// ParseHistoryRows converts the history table into transition rows. Rows with
// fewer than three cells carry no transition and are skipped.
func ParseHistoryRows(document *HistoryDocument) []TransitionRow {
	if document == nil {
		return nil
	}

	rows := make([]TransitionRow, 0, len(document.Rows))
	for _, row := range document.Rows {
		if len(row.Cells) < historyMinCells {
			continue
		}

		var from []string
		for _, v := range strings.Split(row.Cells[historyFromCell], ",") {
			if v = strings.TrimSpace(v); v != "" {
				from = append(from, v)
			}
		}

		isLTS := false
		for _, text := range row.SmallTexts {
			if strings.TrimSpace(text) == historyLTSMarker {
				isLTS = true
				break
			}
		}

		rows = append(rows, TransitionRow{
			To:    strings.TrimSpace(row.Cells[historyToCell]),
			From:  from,
			IsLTS: isLTS,
		})
	}
	return rows
}

// BuildTransitionGraph indexes the rows both ways. Predecessors keeps the last
// row for a duplicated target; Forward accumulates every row a version feeds.
func BuildTransitionGraph(rows []TransitionRow) *TransitionGraph {
	graph := &TransitionGraph{
		Predecessors: make(map[string][]string, len(rows)),
		Forward:      make(map[string][]Transition),
	}
	for _, row := range rows {
		graph.Predecessors[row.To] = row.From
		for _, from := range row.From {
			graph.Forward[from] = append(graph.Forward[from], Transition{To: row.To, IsLTS: row.IsLTS})
		}
	}
	return graph
}

// ReachableTo returns every version from which target can be attained, target
// included, using a breadth-first walk over the predecessors.
func (g *TransitionGraph) ReachableTo(target string) map[string]struct{} {
	reachable := map[string]struct{}{target: {}}
	queue := []string{target}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, prev := range g.Predecessors[current] {
			if _, seen := reachable[prev]; seen {
				continue
			}
			reachable[prev] = struct{}{}
			queue = append(queue, prev)
		}
	}
	return reachable
}
