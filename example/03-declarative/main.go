// Package main demonstrates declarative agents: the whole platform comes
// from a YAML definition, with actions that simulate execution by binding
// their asserted effects.
package main

import (
	"context"
	"fmt"
	"log"

	goap "github.com/felixgeelhaar/goap-go/interfaces/api"
)

const definition = `
max_actions: 10
agents:
  - name: barista
    description: makes coffee
    goals:
      - name: coffeeServed
        value: 5
        preconditions:
          served: true
    actions:
      - name: grind
        cost: 1
        effects:
          grounds: true
      - name: brew
        cost: 2
        preconditions:
          grounds: true
        effects:
          coffee: true
      - name: serve
        cost: 1
        preconditions:
          coffee: true
        effects:
          served: true
`

func main() {
	cfg, err := goap.NewConfigLoader().LoadString(definition, goap.ConfigFormatYAML)
	if err != nil {
		log.Fatal(err)
	}
	agents, err := goap.BuildAgents(cfg)
	if err != nil {
		log.Fatal(err)
	}

	platform := goap.NewPlatform(goap.PlatformConfig{MaxActions: cfg.MaxActions})
	for _, agent := range agents {
		if err := platform.RegisterAgent(agent); err != nil {
			log.Fatal(err)
		}
	}

	ctx := context.Background()
	handle, err := platform.Start(ctx, "barista", nil)
	if err != nil {
		log.Fatal(err)
	}
	snapshot, err := platform.Wait(ctx, handle.ProcessID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Declarative Example ===")
	fmt.Printf("Status: %s\n", snapshot.Status)
	fmt.Printf("Actions executed: %d\n", snapshot.ActionsExecuted)
	fmt.Printf("Bound: %v\n", snapshot.BoundNames)
}
