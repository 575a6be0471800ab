package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireValidDistribution(t *testing.T, dist []float64, numActions int) {
	t.Helper()
	require.Len(t, dist, numActions, "Distribution should have one entry per action")
	sum := 0.0
	for _, p := range dist {
		require.GreaterOrEqual(t, p, 0.0, "Probabilities should be non-negative")
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-9, "Probabilities should sum to 1")
}

func TestNodeStrategy(t *testing.T) {
	t.Run("fresh node falls back to uniform", func(t *testing.T) {
		n := NewNode(4)

		strategy := n.Strategy(1)

		requireValidDistribution(t, strategy, 4)
		for _, p := range strategy {
			require.InDelta(t, 0.25, p, 1e-9, "All-zero regrets should yield the uniform strategy")
		}
	})

	t.Run("plays in proportion to positive regret", func(t *testing.T) {
		n := NewNode(3)
		n.RegretSum = []float64{3, 1, 0}

		strategy := n.Strategy(1)

		requireValidDistribution(t, strategy, 3)
		require.InDelta(t, 0.75, strategy[0], 1e-9, "Regret 3 of 4 total should get probability 0.75")
		require.InDelta(t, 0.25, strategy[1], 1e-9, "Regret 1 of 4 total should get probability 0.25")
		require.InDelta(t, 0.0, strategy[2], 1e-9, "Zero regret should get probability 0")
	})

	t.Run("accumulates reach-weighted strategy once per visit", func(t *testing.T) {
		n := NewNode(2)
		n.RegretSum = []float64{1, 1}

		n.Strategy(0.5)
		n.Strategy(0.25)

		require.InDelta(t, 0.375, n.StrategySum[0], 1e-9, "Each visit should add weight x strategy")
		require.InDelta(t, 0.375, n.StrategySum[1], 1e-9, "Each visit should add weight x strategy")
	})

	t.Run("zero reach weight contributes nothing to the average", func(t *testing.T) {
		n := NewNode(2)

		n.Strategy(0)

		require.Equal(t, []float64{0, 0}, n.StrategySum, "Zero reach should leave the strategy sum untouched")
	})
}

func TestNodeAverageStrategy(t *testing.T) {
	t.Run("normalizes accumulated weights", func(t *testing.T) {
		n := NewNode(2)
		n.StrategySum = []float64{6, 2}

		avg := n.AverageStrategy()

		requireValidDistribution(t, avg, 2)
		require.InDelta(t, 0.75, avg[0], 1e-9)
		require.InDelta(t, 0.25, avg[1], 1e-9)
	})

	t.Run("never-visited node falls back to uniform", func(t *testing.T) {
		n := NewNode(5)

		avg := n.AverageStrategy()

		requireValidDistribution(t, avg, 5)
		for _, p := range avg {
			require.InDelta(t, 0.2, p, 1e-9, "Zero strategy sum should yield the uniform strategy")
		}
	})
}
