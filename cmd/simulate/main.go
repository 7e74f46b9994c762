package main

import (
	"bufio"
	"log"
	"os"

	"github.com/calvinwijaya/blackjack-sim/internal/config"
	"github.com/calvinwijaya/blackjack-sim/internal/report"
	"github.com/calvinwijaya/blackjack-sim/internal/sim"
	"golang.org/x/text/language"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	rw := report.NewWriter(out, language.English)

	opts := sim.OptionsFromConfig(cfg)
	_, err = sim.Sweep(sim.DefaultScenarios(), opts, func(run *sim.Run) {
		if err := rw.Run(run); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		out.Flush()
	})
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}
