package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"liarsdice/game"
)

func TestTraverseFixedDeal(t *testing.T) {
	state := &game.GameState{
		Dice:  [2]int{1, 1},
		Hands: [2][]int{{4}, {2}},
	}
	c := NewCFR(1, nil)

	value := c.traverse(state.Clone(), 1, 1)

	require.GreaterOrEqual(t, value, -1.0, "Game value should be bounded by the payoffs")
	require.LessOrEqual(t, value, 1.0, "Game value should be bounded by the payoffs")

	opening, ok := c.nodes["4|none|0"]
	require.True(t, ok, "The opening information set should be created on first visit")
	require.Equal(t, 12, opening.NumActions(), "The opening node should cover all 12 opening bids")

	responder, ok := c.nodes["2|1-1|1"]
	require.True(t, ok, "The responder's information set after bid 1-1 should exist")
	require.Equal(t, 12, responder.NumActions(), "Challenge plus 11 raises should be legal after bid 1-1")
}

func TestTraverseIsDeterministic(t *testing.T) {
	run := func() map[string]*Node {
		c := NewCFR(7, nil)
		for i := 0; i < 50; i++ {
			c.RunIteration(1, 1)
		}
		return c.Nodes()
	}

	require.Equal(t, run(), run(), "Identical seeds should produce identical tables")
}

func TestRegretFloorInvariant(t *testing.T) {
	c := NewCFR(3, nil)
	for i := 0; i < 200; i++ {
		c.RunIteration(1, 1)

		if (i+1)%50 != 0 {
			continue
		}
		for key, node := range c.Nodes() {
			for _, r := range node.RegretSum {
				require.GreaterOrEqual(t, r, 0.0, "Cumulative regret at %s should never be negative", key)
			}
		}
	}
}

func TestStatsCounters(t *testing.T) {
	var stats Stats
	c := NewCFR(5, &stats)

	c.RunIteration(1, 1)
	c.RunIteration(1, 1)

	require.Equal(t, int64(2), stats.TreesTraversed.Load(), "Each iteration should count one traversed tree")
	require.Greater(t, stats.NodesVisited.Load(), int64(2), "A full traversal should visit many nodes")
}
