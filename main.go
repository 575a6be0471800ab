package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"liarsdice/experiments"
	"liarsdice/solver"
	"liarsdice/strategy"
)

func main() {
	dice1 := flag.Int("dice1", 1, "Number of dice for player 1")
	dice2 := flag.Int("dice2", 1, "Number of dice for player 2")
	iterations := flag.Int("iterations", 100000, "Total number of training iterations")
	workers := flag.Int("workers", 0, "Number of training workers (0 = one per CPU)")
	seed := flag.Uint64("seed", 0, "Base RNG seed (0 = time-based)")
	out := flag.String("out", "", "Strategy CSV path (default strategy_<dice1>v<dice2>.csv)")
	experiment := flag.Bool("experiment", false, "Run the worker scaling experiment instead of training")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *experiment {
		experiments.RunWorkerScaling(*dice1, *dice2, *iterations)
		return
	}

	cfg := solver.TrainingConfig{
		DiceA:      *dice1,
		DiceB:      *dice2,
		Iterations: *iterations,
	}

	bar := progressbar.Default(int64(*iterations), "training")
	trainer, err := solver.NewTrainer(cfg,
		solver.WithWorkers(*workers),
		solver.WithSeed(*seed),
		solver.WithProgress(func(completed int) {
			_ = bar.Add(completed)
		}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	start := time.Now()
	nodes := trainer.Train()
	elapsed := time.Since(start)
	_ = bar.Finish()

	log.Info().Msgf("trained %d information sets in %s (%.0f iterations/sec)",
		len(nodes), elapsed.Round(time.Millisecond),
		float64(trainer.EffectiveIterations())/elapsed.Seconds())

	path := *out
	if path == "" {
		path = fmt.Sprintf("strategy_%dv%d.csv", *dice1, *dice2)
	}
	if err := strategy.Save(path, nodes, *dice1, *dice2); err != nil {
		log.Fatal().Err(err).Msg("output write failure")
	}
	log.Info().Msgf("saved strategy to %s", path)
}
