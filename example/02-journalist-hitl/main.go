// Package main demonstrates human-in-the-loop suspension: a journalist
// agent that researches and drafts on its own, but will not publish
// without an editor's confirmation.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	goap "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func main() {
	journalist := buildJournalist()

	platform := goap.NewPlatform(goap.PlatformConfig{})
	if err := platform.RegisterAgent(journalist); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	handle, err := platform.Start(ctx, "journalist", map[string]any{"topic": "the product launch"})
	if err != nil {
		log.Fatal(err)
	}

	// The process researches and drafts, then parks on a confirmation.
	// Poll until it is waiting, answer on stdin, and let it finish.
	for {
		snapshot, err := platform.Status(ctx, handle.ProcessID)
		if err != nil {
			log.Fatal(err)
		}
		if snapshot.Status == goap.StatusWaiting {
			break
		}
		if snapshot.Status.Terminal() || snapshot.Status == goap.StatusStuck {
			log.Fatalf("process finished early: %s (%s)", snapshot.Status, snapshot.FailureReason)
		}
		time.Sleep(10 * time.Millisecond)
	}

	pending, err := platform.Pending(ctx, handle.ProcessID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\n%s [y/N]: ", pending.Message)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	accepted := strings.EqualFold(strings.TrimSpace(line), "y")

	if err := platform.Resume(ctx, goap.NewConfirmationResponse(pending.ID, accepted)); err != nil {
		log.Fatal(err)
	}

	snapshot, err := platform.Wait(ctx, handle.ProcessID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== Journalist Example ===")
	fmt.Printf("Status: %s\n", snapshot.Status)
	if snapshot.Status == goap.StatusCompleted {
		fmt.Printf("Goal: %s\n", snapshot.CompletedGoal)
	} else {
		fmt.Printf("Reason: %s\n", snapshot.FailureReason)
	}
}

// buildJournalist assembles the agent: research and draft run unattended,
// publish suspends on an editor confirmation the first time it runs.
func buildJournalist() *goap.Agent {
	research := goap.NewActionBuilder("research").
		Requires("topic", goap.True).
		Asserts("notes", goap.True).
		WithCost(2).
		Idempotent().
		WithHandler(func(ctx context.Context, inv *goap.Invocation) (goap.ActionResult, error) {
			topic, _ := inv.Blackboard.Get("topic")
			return goap.ActionResult{
				Bindings: map[string]any{"notes": fmt.Sprintf("background on %v", topic)},
			}, nil
		}).
		MustBuild()

	draft := goap.NewActionBuilder("draft").
		Requires("notes", goap.True).
		Asserts("draft", goap.True).
		WithCost(3).
		WithHandler(func(ctx context.Context, inv *goap.Invocation) (goap.ActionResult, error) {
			notes, _ := inv.Blackboard.Get("notes")
			return goap.ActionResult{
				Bindings: map[string]any{"draft": fmt.Sprintf("article using %v", notes)},
			}, nil
		}).
		MustBuild()

	publish := goap.NewActionBuilder("publish").
		Requires("draft", goap.True).
		Asserts("published", goap.True).
		WithCost(1).
		WithHandler(func(ctx context.Context, inv *goap.Invocation) (goap.ActionResult, error) {
			if inv.Response == nil {
				confirmation, err := goap.NewConfirmation("Publish the drafted article?", nil)
				if err != nil {
					return goap.ActionResult{}, err
				}
				return goap.ActionResult{Awaitable: confirmation}, nil
			}
			if accepted, _ := inv.Response["accepted"].(bool); !accepted {
				return goap.ActionResult{}, fmt.Errorf("editor rejected the draft")
			}
			return goap.ActionResult{
				Bindings: map[string]any{"published": true},
			}, nil
		}).
		MustBuild()

	goal, err := goap.NewGoal("articlePublished", goap.EffectSpec{"published": goap.True}, 10)
	if err != nil {
		log.Fatal(err)
	}

	return goap.NewAgentBuilder("journalist").
		WithDescription("Researches, drafts, and publishes with editorial sign-off").
		WithAction(research).
		WithAction(draft).
		WithAction(publish).
		WithGoal(goal).
		MustBuild()
}
