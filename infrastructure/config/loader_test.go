package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
max_actions: 25
logging:
  level: debug
  format: console
redis:
  address: localhost:6379
  key_prefix: "goap:"
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
        idempotent: true
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

func TestLoader_LoadString(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.LoadString(validYAML, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	if cfg.MaxActions != 25 {
		t.Errorf("MaxActions = %d, want 25", cfg.MaxActions)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Redis == nil || cfg.Redis.Address != "localhost:6379" {
		t.Errorf("Redis.Address = %+v, want localhost:6379", cfg.Redis)
	}
	if len(cfg.Agents) != 1 {
		t.Fatalf("len(Agents) = %d, want 1", len(cfg.Agents))
	}

	a := cfg.Agents[0]
	if a.Name != "journalist" {
		t.Errorf("agent name = %s, want journalist", a.Name)
	}
	if len(a.Goals) != 1 || len(a.Actions) != 3 {
		t.Errorf("goals/actions = %d/%d, want 1/3", len(a.Goals), len(a.Actions))
	}
	if !a.Actions[0].Idempotent {
		t.Error("research action should be idempotent")
	}
	if a.Actions[1].Preconditions["researchDone"] != true {
		t.Error("write action should require researchDone")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platform.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.MaxActions != 25 {
		t.Errorf("MaxActions = %d, want 25", cfg.MaxActions)
	}
}

func TestLoader_LoadFileNotFound(t *testing.T) {
	_, err := NewLoader().LoadFile("/nonexistent/platform.yaml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadFile() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platform.toml")
	if err := os.WriteFile(path, []byte("max_actions = 5"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := NewLoader().LoadFile(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadFile() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoader_InvalidYAML(t *testing.T) {
	_, err := NewLoader().LoadString("max_actions: [not a number", FormatYAML)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("LoadString() error = %v, want ErrInvalidFormat", err)
	}
}

func TestLoader_EnvExpansion(t *testing.T) {
	t.Setenv("GOAP_TEST_REDIS", "redis.internal:6380")

	yaml := `
redis:
  address: ${GOAP_TEST_REDIS}
agents: []
`
	cfg, err := NewLoader().LoadString(yaml, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.Redis.Address != "redis.internal:6380" {
		t.Errorf("Redis.Address = %s, want redis.internal:6380", cfg.Redis.Address)
	}
}

func TestLoader_EnvDefault(t *testing.T) {
	yaml := `
redis:
  address: ${GOAP_UNSET_VAR:-localhost:6379}
agents: []
`
	cfg, err := NewLoader().LoadString(yaml, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("Redis.Address = %s, want localhost:6379", cfg.Redis.Address)
	}
}

func TestLoader_StrictEnvMissing(t *testing.T) {
	loader := NewLoaderWithOptions(WithStrictEnv(true))

	_, err := loader.LoadString("redis:\n  address: ${GOAP_DEFINITELY_UNSET}\n", FormatYAML)
	if !errors.Is(err, ErrMissingEnvVar) {
		t.Errorf("LoadString() error = %v, want ErrMissingEnvVar", err)
	}
}

func TestLoader_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "negative max_actions",
			yaml: "max_actions: -1\nagents: []",
		},
		{
			name: "agent without goals",
			yaml: `
agents:
  - name: empty
    actions: []
`,
		},
		{
			name: "goal without preconditions",
			yaml: `
agents:
  - name: a
    goals:
      - name: g
        value: 1
`,
		},
		{
			name: "action with negative cost",
			yaml: `
agents:
  - name: a
    goals:
      - name: g
        preconditions: {done: true}
    actions:
      - name: bad
        cost: -1
        effects: {done: true}
`,
		},
		{
			name: "duplicate agent names",
			yaml: `
agents:
  - name: a
    goals: [{name: g, preconditions: {done: true}}]
  - name: a
    goals: [{name: g, preconditions: {done: true}}]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadString(tt.yaml, FormatYAML)
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("LoadString() error = %v, want ErrValidationFailed", err)
			}
		})
	}
}
