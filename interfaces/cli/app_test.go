package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const definitionYAML = `
max_actions: 25
logging:
  level: error
  format: console
agents:
  - name: journalist
    description: writes articles
    goals:
      - name: articlePublished
        value: 10
        preconditions:
          articlePublished: true
    actions:
      - name: research
        cost: 2
        effects:
          researchDone: true
      - name: write
        cost: 3
        preconditions:
          researchDone: true
        effects:
          articleWritten: true
      - name: publish
        cost: 1
        preconditions:
          articleWritten: true
        effects:
          articlePublished: true
`

func writeDefinition(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platform.yaml")
	if err := os.WriteFile(path, []byte(definitionYAML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "goap-go version") {
		t.Errorf("output = %q, want version banner", out)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := runApp(t, "validate", "-c", writeDefinition(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "Platform definition is valid") {
		t.Errorf("output = %q, want validity confirmation", out)
	}
	if !strings.Contains(out, "journalist (1 goals, 3 actions)") {
		t.Errorf("output = %q, want agent summary", out)
	}
}

func TestValidateCommandRejectsBrokenDefinition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("agents:\n  - name: ''\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := runApp(t, "validate", "-c", path); err == nil {
		t.Fatal("validate accepted a definition with an unnamed agent")
	}
}

func TestPlanCommand(t *testing.T) {
	out, err := runApp(t, "plan", "-c", writeDefinition(t))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{"articlePublished", "research", "write", "publish"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want to mention %q", out, want)
		}
	}
}

func TestPlanCommandSatisfiedGoal(t *testing.T) {
	out, err := runApp(t, "plan", "-c", writeDefinition(t), "--bind", "articlePublished=yes")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "no actions needed") {
		t.Errorf("output = %q, want satisfied-goal notice", out)
	}
}

func TestRunCommand(t *testing.T) {
	out, err := runApp(t, "run", "-c", writeDefinition(t), "journalist")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Status: completed") {
		t.Errorf("output = %q, want completed status", out)
	}
	if !strings.Contains(out, "Actions executed: 3") {
		t.Errorf("output = %q, want three executed actions", out)
	}
}

func TestRunCommandUnknownAgent(t *testing.T) {
	if _, err := runApp(t, "run", "-c", writeDefinition(t), "stranger"); err == nil {
		t.Fatal("run accepted an agent the definition does not declare")
	}
}

func TestAgentsCommand(t *testing.T) {
	out, err := runApp(t, "agents", "-c", writeDefinition(t))
	if err != nil {
		t.Fatalf("agents: %v", err)
	}
	if !strings.Contains(out, "journalist") || !strings.Contains(out, "requires articleWritten") {
		t.Errorf("output = %q, want agent and action detail", out)
	}
}
