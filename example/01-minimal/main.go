// Package main demonstrates the absolute minimum working process.
// This is the simplest possible goap-go example.
package main

import (
	"context"
	"fmt"
	"log"

	goap "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func main() {
	// 1. Declare an action: what it needs, what it asserts, what it does.
	greet := goap.NewActionBuilder("greet").
		WithDescription("Produces a greeting for the bound name").
		Requires("name", goap.True).
		Asserts("greeted", goap.True).
		WithHandler(func(ctx context.Context, inv *goap.Invocation) (goap.ActionResult, error) {
			name, _ := inv.Blackboard.Get("name")
			return goap.ActionResult{
				Bindings: map[string]any{"greeted": fmt.Sprintf("Hello, %v!", name)},
			}, nil
		}).
		MustBuild()

	// 2. Declare the goal worth reaching.
	goal, err := goap.NewGoal("everyoneGreeted", goap.EffectSpec{"greeted": goap.True}, 1)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Bundle the agent.
	greeter := goap.NewAgentBuilder("greeter").
		WithAction(greet).
		WithGoal(goal).
		MustBuild()

	// 4. Run a process on an in-memory platform.
	platform := goap.NewPlatform(goap.PlatformConfig{})
	if err := platform.RegisterAgent(greeter); err != nil {
		log.Fatal(err)
	}

	handle, err := platform.Start(context.Background(), "greeter", map[string]any{"name": "world"})
	if err != nil {
		log.Fatal(err)
	}
	snapshot, err := platform.Wait(context.Background(), handle.ProcessID)
	if err != nil {
		log.Fatal(err)
	}

	// 5. Check results.
	fmt.Println("=== Minimal Process Example ===")
	fmt.Printf("Status: %s\n", snapshot.Status)
	fmt.Printf("Goal: %s\n", snapshot.CompletedGoal)
	fmt.Printf("Actions executed: %d\n", snapshot.ActionsExecuted)
}
