// Seed script for writing a demo response dataset.
// Run with: go run ./scripts/seed.go [path]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Harshitk-cp/consensus/internal/config"
	"github.com/Harshitk-cp/consensus/internal/service"
	"github.com/Harshitk-cp/consensus/internal/store"
)

const (
	demoInformants = 10
	demoItems      = 20
	demoSeed       = 107
)

func main() {
	_ = config.Load()

	path := config.DataPath()
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	sim, err := service.NewCCTModel().Simulate(demoInformants, demoItems, demoSeed)
	if err != nil {
		log.Fatalf("Failed to simulate responses: %v", err)
	}

	s := store.NewResponseStore(config.IDColumn())
	if err := s.Save(context.Background(), path, sim.Data); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}

	fmt.Printf("Wrote %d informants x %d items to %s\n", demoInformants, demoItems, path)
	fmt.Println("True consensus:", sim.Consensus)
	fmt.Printf("True competence: %.2f\n", sim.Competence)
}
