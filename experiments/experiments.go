package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"liarsdice/experiments/metrics"
	"liarsdice/solver"
)

const (
	RunsPerConfig = 3
	BaseSeed      = 42
)

var workerLadder = []int{1, 2, 4, 8, 16, 32}

// RunWorkerScaling trains the same workload across a ladder of worker
// counts and records throughput for each, to measure how the parallel
// table-merge scheme scales.
func RunWorkerScaling(diceA, diceB, iterations int) {
	configs := []metrics.RunConfig{}
	for i, workers := range workerLadder {
		configs = append(configs, metrics.RunConfig{
			ID:         i + 1,
			Workers:    workers,
			Iterations: iterations,
			DiceA:      diceA,
			DiceB:      diceB,
			Seed:       BaseSeed,
		})
	}

	log.Info().Msgf("starting worker scaling experiment: %dv%d dice, %d iterations...", diceA, diceB, iterations)

	count := 0
	records := []metrics.RunRecord{}
	for _, config := range configs {
		log.Info().Msgf("starting config %d of %d with %d workers...", config.ID, len(configs), config.Workers)

		for i := 0; i < RunsPerConfig; i++ {
			record, err := runTraining(config)
			if err != nil {
				panic(fmt.Sprintf("failed to run training: %v", err))
			}
			count++
			record.ID = count
			records = append(records, record)

			log.Info().Msgf("completed run %d of %d at %.0f iterations/sec", i+1, RunsPerConfig, record.IterationsSec)
		}
		log.Info().Msgf("completed config %d of %d", config.ID, len(configs))
	}

	log.Info().Msg("completed worker scaling experiment")

	// Store experiment metadata and results
	writer, err := metrics.NewWriter("worker_scaling")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteRunConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store run configs: %v", err))
	}
	log.Info().Msg("stored run configs")

	err = writer.WriteRunRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to store run records: %v", err))
	}
	log.Info().Msg("stored run records")
}

// runTraining executes a single training run and returns its record.
func runTraining(config metrics.RunConfig) (metrics.RunRecord, error) {
	cfg := solver.TrainingConfig{
		DiceA:      config.DiceA,
		DiceB:      config.DiceB,
		Iterations: config.Iterations,
	}
	trainer, err := solver.NewTrainer(cfg,
		solver.WithWorkers(config.Workers),
		solver.WithSeed(config.Seed),
	)
	if err != nil {
		return metrics.RunRecord{}, err
	}

	start := time.Now()
	nodes := trainer.Train()
	elapsed := time.Since(start)

	return metrics.RunRecord{
		Config:        config.ID,
		Duration:      elapsed,
		InfoSets:      len(nodes),
		NodesVisited:  trainer.Stats.NodesVisited.Load(),
		IterationsSec: float64(trainer.EffectiveIterations()) / elapsed.Seconds(),
	}, nil
}
