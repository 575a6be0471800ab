package solver

// Node accumulates cumulative regret and strategy weight for one information
// set. Both vectors are indexed by the local action index: the position in
// the information set's legal-action list, which the game model enumerates in
// a fixed order. Nodes are private to one worker, so nothing here locks.
type Node struct {
	RegretSum   []float64
	StrategySum []float64
}

// NewNode allocates a node for an information set with numActions legal
// actions, both accumulators zeroed.
func NewNode(numActions int) *Node {
	return &Node{
		RegretSum:   make([]float64, numActions),
		StrategySum: make([]float64, numActions),
	}
}

// NumActions returns the number of legal actions at this information set.
func (n *Node) NumActions() int {
	return len(n.RegretSum)
}

// Strategy derives the current mixed strategy by regret matching: positive
// cumulative regrets normalized to sum to 1, uniform when none are positive.
// It also folds this visit's reach-weighted strategy into the running
// average, so it must be called exactly once per visit, before the regret
// update.
func (n *Node) Strategy(realizationWeight float64) []float64 {
	strategy := make([]float64, len(n.RegretSum))
	normalizing := 0.0
	for i, r := range n.RegretSum {
		if r > 0 {
			strategy[i] = r
			normalizing += r
		}
	}

	for i := range strategy {
		if normalizing > 0 {
			strategy[i] /= normalizing
		} else {
			strategy[i] = 1.0 / float64(len(strategy))
		}
		n.StrategySum[i] += realizationWeight * strategy[i]
	}
	return strategy
}

// AverageStrategy normalizes the accumulated strategy weights into the
// strategy the training run converges to. Uniform if the node was never
// visited with positive reach.
func (n *Node) AverageStrategy() []float64 {
	avg := make([]float64, len(n.StrategySum))
	normalizing := 0.0
	for _, w := range n.StrategySum {
		normalizing += w
	}

	for i := range avg {
		if normalizing > 0 {
			avg[i] = n.StrategySum[i] / normalizing
		} else {
			avg[i] = 1.0 / float64(len(avg))
		}
	}
	return avg
}

// add folds other's accumulators into n elementwise. Both nodes must key the
// same information set, which fixes their action count.
func (n *Node) add(other *Node) {
	for i := range other.RegretSum {
		n.RegretSum[i] += other.RegretSum[i]
		n.StrategySum[i] += other.StrategySum[i]
	}
}
