package main

import (
	"flag"
	"fmt"
	"os"

	"ms-lotto/internal/logger"
	"ms-lotto/internal/lotto"
	"ms-lotto/internal/scenario"
)

func main() {
	file := flag.String("f", "scenario.yaml", "scenario file")
	seed := flag.Uint64("seed", 0, "seed for generated tickets when the scenario has none (0 = crypto source)")
	flag.Parse()

	log := logger.NewLoggerWithWriter(os.Stderr)

	s, err := scenario.Load(*file)
	if err != nil {
		log.Fatal("LOTTO", fmt.Sprintf("Failed to load scenario: %v", err))
	}

	var rng lotto.RandomSource
	if *seed != 0 {
		rng = lotto.NewSeededRNG(*seed)
	}

	outcome, err := s.Play(rng)
	if err != nil {
		log.Fatal("LOTTO", fmt.Sprintf("Scenario %s rejected: %v", *file, err))
	}
	if err := scenario.Print(os.Stdout, outcome); err != nil {
		log.Fatal("APP", fmt.Sprintf("Failed to write output: %v", err))
	}
}
