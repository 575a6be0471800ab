package solver

import (
	"sync/atomic"

	"golang.org/x/exp/rand"

	"liarsdice/game"
)

// Stats counts traversal work. One Stats value is shared by every worker of
// a training run, so the counters are atomic.
type Stats struct {
	NodesVisited   atomic.Int64
	TreesTraversed atomic.Int64
}

// CFR walks full game trees with the CFR+ update rule, accumulating into a
// private node table. Each instance is owned by exactly one worker for the
// whole run; the table is a plain map and the generator is unshared.
type CFR struct {
	nodes map[string]*Node
	rng   *rand.Rand
	stats *Stats
}

// NewCFR returns a solver with an empty table and its own seeded generator.
func NewCFR(seed uint64, stats *Stats) *CFR {
	return &CFR{
		nodes: make(map[string]*Node),
		rng:   rand.New(rand.NewSource(seed)),
		stats: stats,
	}
}

// Nodes exposes the table accumulated so far.
func (c *CFR) Nodes() map[string]*Node {
	return c.nodes
}

// RunIteration deals a fresh game and traverses its full tree once, with
// both players' reach weights at 1. Returns the root game value from
// player 0's perspective.
func (c *CFR) RunIteration(diceA, diceB int) float64 {
	state := game.NewGameState(diceA, diceB, c.rng)
	value := c.traverse(state, 1, 1)
	if c.stats != nil {
		c.stats.TreesTraversed.Add(1)
	}
	return value
}

// traverse returns the game value from the acting player's perspective,
// negating across each turn boundary (the game is zero-sum). p0Weight and
// p1Weight are each player's own reach probabilities: the average strategy
// is weighted by the actor's own reach, while the regret update is weighted
// by the opponent's (counterfactual weighting).
func (c *CFR) traverse(state *game.GameState, p0Weight, p1Weight float64) float64 {
	if c.stats != nil {
		c.stats.NodesVisited.Add(1)
	}

	player := state.CurrentPlayer
	actions := state.LegalActions()
	if len(actions) == 0 { // Unreachable for any dealable game
		return 0
	}

	infoSet := state.InfoSet()
	node, ok := c.nodes[infoSet]
	if !ok {
		node = NewNode(len(actions))
		c.nodes[infoSet] = node
	}

	ownWeight := p0Weight
	if player == 1 {
		ownWeight = p1Weight
	}
	strategy := node.Strategy(ownWeight)

	utilities := make([]float64, len(actions))
	nodeUtility := 0.0
	for i, action := range actions {
		next := state.Clone()
		if terminal := next.Apply(action); terminal {
			// Payoff is from the challenger's perspective, and the
			// challenger is the player acting here
			utilities[i] = next.Payoff()
		} else if player == 0 {
			utilities[i] = -c.traverse(next, p0Weight*strategy[i], p1Weight)
		} else {
			utilities[i] = -c.traverse(next, p0Weight, p1Weight*strategy[i])
		}
		nodeUtility += strategy[i] * utilities[i]
	}

	counterfactual := p1Weight
	if player == 1 {
		counterfactual = p0Weight
	}
	for i := range actions {
		regret := counterfactual * (utilities[i] - nodeUtility)
		// CFR+: cumulative regret is floored at zero after every update
		updated := node.RegretSum[i] + regret
		if updated < 0 {
			updated = 0
		}
		node.RegretSum[i] = updated
	}

	return nodeUtility
}
