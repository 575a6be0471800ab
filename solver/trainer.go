package solver

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrInvalidConfig marks configuration the trainer refuses to run with.
var ErrInvalidConfig = errors.New("invalid configuration")

// TrainingConfig describes one training workload.
type TrainingConfig struct {
	DiceA      int // Dice for player 0
	DiceB      int // Dice for player 1
	Iterations int // Total iterations across all workers
}

// Validate rejects malformed workloads before any worker starts.
func (c TrainingConfig) Validate() error {
	if c.DiceA <= 0 || c.DiceB <= 0 {
		return fmt.Errorf("%w: dice counts must be positive, got %dv%d", ErrInvalidConfig, c.DiceA, c.DiceB)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	return nil
}

type Option func(t *Trainer)

// WithWorkers overrides the worker count; non-positive values keep the
// default of one worker per CPU.
func WithWorkers(workers int) Option {
	return func(t *Trainer) {
		if workers > 0 {
			t.workers = workers
		}
	}
}

// WithSeed fixes the base seed so runs are reproducible. Worker w draws from
// seed+w, keeping the streams independent.
func WithSeed(seed uint64) Option {
	return func(t *Trainer) {
		if seed != 0 {
			t.seed = seed
		}
	}
}

// WithProgress registers a callback invoked with the number of newly
// completed iterations. Workers call it concurrently, so it must be safe
// for concurrent use.
func WithProgress(progress func(completed int)) Option {
	return func(t *Trainer) {
		t.progress = progress
	}
}

// Trainer fans training iterations out over a fixed pool of workers, each
// running the recursive solver against a private table, then folds the
// tables together. Workers never share state mid-run; the final fold is the
// only synchronization point.
type Trainer struct {
	cfg      TrainingConfig
	workers  int
	seed     uint64
	progress func(int)
	Stats    Stats
}

// NewTrainer validates the workload and applies options over the defaults.
func NewTrainer(cfg TrainingConfig, options ...Option) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Trainer{
		cfg:     cfg,
		workers: runtime.NumCPU(),
		seed:    uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(t)
	}
	return t, nil
}

// EffectiveIterations returns the iteration count actually run: the even
// per-worker split drops any remainder.
func (t *Trainer) EffectiveIterations() int {
	return (t.cfg.Iterations / t.workers) * t.workers
}

// Train runs the workload and returns the merged table. Summing the
// independently trained tables approximates the same number of serial
// iterations against one table; workers trade mid-run opponent feedback for
// parallelism.
func (t *Trainer) Train() map[string]*Node {
	perWorker := t.cfg.Iterations / t.workers
	log.Info().Msgf("training %dv%d dice: %d workers x %d iterations",
		t.cfg.DiceA, t.cfg.DiceB, t.workers, perWorker)

	tables := make([]map[string]*Node, t.workers)
	var wg sync.WaitGroup
	for w := 0; w < t.workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			c := NewCFR(t.seed+uint64(w), &t.Stats)
			for i := 0; i < perWorker; i++ {
				c.RunIteration(t.cfg.DiceA, t.cfg.DiceB)
				if t.progress != nil {
					t.progress(1)
				}
			}
			tables[w] = c.Nodes()
		}(w)
	}
	wg.Wait()

	merged := make(map[string]*Node)
	for _, table := range tables {
		merged = Merge(merged, table)
	}

	log.Info().Msgf("training complete: %d information sets, %d nodes visited",
		len(merged), t.Stats.NodesVisited.Load())
	return merged
}

// Merge folds src into dst entrywise and returns dst. Regret and strategy
// accumulation are additive, so merging tables in any order or grouping
// produces the same result. src is left untouched.
func Merge(dst, src map[string]*Node) map[string]*Node {
	for key, node := range src {
		existing, ok := dst[key]
		if !ok {
			existing = NewNode(node.NumActions())
			dst[key] = existing
		}
		existing.add(node)
	}
	return dst
}
