package strategy

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"liarsdice/game"
	"liarsdice/solver"
)

// ReportThreshold filters out actions the average strategy effectively never
// plays. Presentation only; the trained table keeps every entry.
const ReportThreshold = 0.001

// Save writes the averaged strategy as CSV rows of InfoSet,Action,Probability,
// one row per action above the reporting threshold, keys in sorted order.
// Action labels come from rebuilding each key's legal-action list, which the
// game model enumerates in the same fixed order the solver indexed with.
func Save(path string, nodes map[string]*solver.Node, diceA, diceB int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create strategy file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	err = w.Write([]string{"InfoSet", "Action", "Probability"})
	if err != nil {
		return fmt.Errorf("failed to write strategy header: %w", err)
	}

	keys := make([]string, 0, len(nodes))
	for key := range nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		actions, err := actionsForKey(key, diceA, diceB)
		if err != nil {
			return err
		}

		avg := nodes[key].AverageStrategy()
		if len(actions) != len(avg) {
			return fmt.Errorf("info set %q has %d legal actions but %d probabilities", key, len(actions), len(avg))
		}

		for i, p := range avg {
			if p <= ReportThreshold {
				continue
			}
			row := []string{key, actions[i].String(), strconv.FormatFloat(p, 'f', -1, 64)}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write strategy row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush strategy rows: %w", err)
	}
	return nil
}

// actionsForKey rebuilds the legal actions for an information set from a
// representative state carrying the key's bid. Hands never affect which
// actions are legal, so the representative needs none.
func actionsForKey(key string, diceA, diceB int) ([]game.Action, error) {
	parts := strings.Split(key, "|")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed info set key %q", key)
	}

	state := &game.GameState{Dice: [2]int{diceA, diceB}}
	if parts[1] != game.NoBid {
		var q, f int
		if _, err := fmt.Sscanf(parts[1], "%d-%d", &q, &f); err != nil {
			return nil, fmt.Errorf("malformed bid in info set key %q: %w", key, err)
		}
		state.CurrentBid = &game.Bid{Quantity: q, Face: f}
	}
	return state.LegalActions(), nil
}
