package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/ralphloop/internal/executor"
	"github.com/dshills/ralphloop/internal/hat"
	"github.com/dshills/ralphloop/internal/orchestrator"
	"github.com/dshills/ralphloop/internal/topic"
)

func secondsToDuration(secs int) time.Duration {
	return time.Duration(secs) * time.Second
}

// namedBackends are the built-in CLI backend presets a cli.backend.name
// can refer to without spelling out command/args/prompt_mode again.
var namedBackends = map[string]CLIBackendConfig{
	"claude": {Command: "claude", Args: []string{"--print"}, PromptMode: "stdin"},
	"gemini": {Command: "gemini", PromptMode: "argument", PromptFlag: "-p"},
	"codex":  {Command: "codex", Args: []string{"exec"}, PromptMode: "stdin"},
	"amp":    {Command: "amp", PromptMode: "stdin"},
	"copilot": {Command: "copilot", Args: []string{"suggest"}, PromptMode: "argument", PromptFlag: "-p"},
	"opencode": {Command: "opencode", Args: []string{"run"}, PromptMode: "stdin"},
}

// CLIBackendConfig describes one CLI backend invocation: a named preset
// (claude, gemini, codex, amp, copilot, opencode) or a fully custom
// command. Explicit fields override the named preset's defaults field by
// field, so a custom Args or Timeout can be layered on a known preset.
type CLIBackendConfig struct {
	// Name selects a built-in preset. Empty means fully custom.
	Name string `yaml:"name"`

	Command     string   `yaml:"command"`
	Args        []string `yaml:"args"`
	PromptMode  string   `yaml:"prompt_mode"`
	PromptFlag  string   `yaml:"prompt_flag"`
	Env         []string `yaml:"env"`
	TimeoutSecs int      `yaml:"timeout_secs"`
	GraceSecs   int      `yaml:"grace_secs"`
}

// Resolve merges a named preset (if any) with the explicit overrides in c.
func (c CLIBackendConfig) Resolve() (CLIBackendConfig, error) {
	if c.Name == "" {
		return c, nil
	}
	preset, ok := namedBackends[c.Name]
	if !ok {
		return c, fmt.Errorf("config: unknown cli.backend.name %q", c.Name)
	}
	if c.Command != "" {
		preset.Command = c.Command
	}
	if len(c.Args) > 0 {
		preset.Args = c.Args
	}
	if c.PromptMode != "" {
		preset.PromptMode = c.PromptMode
	}
	if c.PromptFlag != "" {
		preset.PromptFlag = c.PromptFlag
	}
	if len(c.Env) > 0 {
		preset.Env = c.Env
	}
	if c.TimeoutSecs != 0 {
		preset.TimeoutSecs = c.TimeoutSecs
	}
	if c.GraceSecs != 0 {
		preset.GraceSecs = c.GraceSecs
	}
	return preset, nil
}

// ToExecutorConfig converts a resolved CLIBackendConfig into the executor
// package's runtime configuration.
func (c CLIBackendConfig) ToExecutorConfig() executor.Config {
	cfg := executor.Config{
		Command: c.Command,
		Args:    c.Args,
		Env:     c.Env,
	}
	switch c.PromptMode {
	case "argument":
		cfg.PromptMode = executor.PromptModeArgument
	default:
		cfg.PromptMode = executor.PromptModeStdin
	}
	cfg.PromptFlag = c.PromptFlag
	if c.TimeoutSecs > 0 {
		cfg.Timeout = secondsToDuration(c.TimeoutSecs)
	}
	if c.GraceSecs > 0 {
		cfg.GracePeriod = secondsToDuration(c.GraceSecs)
	}
	return cfg
}

// EventLoopConfig holds the event_loop.* settings.
type EventLoopConfig struct {
	CompletionPromise      string  `yaml:"completion_promise"`
	MaxIterations          int     `yaml:"max_iterations"`
	MaxRuntimeSeconds      int     `yaml:"max_runtime_seconds"`
	MaxCostUSD             float64 `yaml:"max_cost_usd"`
	MaxConsecutiveFailures int     `yaml:"max_consecutive_failures"`
	CheckpointInterval     int     `yaml:"checkpoint_interval"`
	IdleTimeoutSecs        int     `yaml:"idle_timeout_secs"`
	StartingEvent          string  `yaml:"starting_event"`
}

// ToLoopConfig converts to the orchestrator package's LoopConfig.
func (e EventLoopConfig) ToLoopConfig() orchestrator.LoopConfig {
	return orchestrator.LoopConfig{
		CompletionPromise:      e.CompletionPromise,
		MaxIterations:          e.MaxIterations,
		MaxRuntimeSeconds:      e.MaxRuntimeSeconds,
		MaxCostUSD:             e.MaxCostUSD,
		MaxConsecutiveFailures: e.MaxConsecutiveFailures,
		CheckpointInterval:     e.CheckpointInterval,
		IdleTimeoutSecs:        e.IdleTimeoutSecs,
		StartingEvent:          e.StartingEvent,
	}
}

// HatConfig describes one persona entry in the optional hats mapping.
type HatConfig struct {
	DisplayName   string            `yaml:"display_name"`
	Subscriptions []string          `yaml:"subscriptions"`
	Publishes     []string          `yaml:"publishes"`
	Instructions  string            `yaml:"instructions"`
	Backend       *CLIBackendConfig `yaml:"backend"`
}

// Config is the top-level configuration document.
type Config struct {
	CLI struct {
		Backend CLIBackendConfig `yaml:"backend"`
	} `yaml:"cli"`

	EventLoop EventLoopConfig `yaml:"event_loop"`

	// Hats maps hat ID to its definition. A nil/empty map selects
	// single-hat mode.
	Hats map[string]HatConfig `yaml:"hats"`

	// hatOrder preserves the hats mapping's source order, since dispatch
	// tie-breaking depends on registration order and Go maps do not
	// remember it. Populated by UnmarshalYAML, not by direct field access.
	hatOrder []string
}

// rawConfig mirrors Config's shape but with hats as an ordered YAML
// mapping node so UnmarshalYAML can recover key order before it is lost
// to Go's unordered map.
type rawConfig struct {
	CLI struct {
		Backend CLIBackendConfig `yaml:"backend"`
	} `yaml:"cli"`
	EventLoop EventLoopConfig `yaml:"event_loop"`
	Hats      yaml.Node       `yaml:"hats"`
}

// UnmarshalYAML implements yaml.Unmarshaler so the hats mapping's
// insertion order survives decoding.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.CLI = raw.CLI
	c.EventLoop = raw.EventLoop
	c.Hats = nil
	c.hatOrder = nil

	if raw.Hats.Kind != yaml.MappingNode {
		return nil
	}
	c.Hats = make(map[string]HatConfig, len(raw.Hats.Content)/2)
	for i := 0; i+1 < len(raw.Hats.Content); i += 2 {
		id := raw.Hats.Content[i].Value
		var hc HatConfig
		if err := raw.Hats.Content[i+1].Decode(&hc); err != nil {
			return fmt.Errorf("hats.%s: %w", id, err)
		}
		c.Hats[id] = hc
		c.hatOrder = append(c.hatOrder, id)
	}
	return nil
}

// HatOrder returns hat IDs in the order they appeared in the source YAML
// document.
func (c *Config) HatOrder() []string {
	out := make([]string, len(c.hatOrder))
	copy(out, c.hatOrder)
	return out
}

// Load reads path, expands ${VAR} environment references (so API keys and
// tokens need not be committed to the config file), applies defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.EventLoop.CompletionPromise == "" {
		c.EventLoop.CompletionPromise = orchestrator.DefaultCompletionPromise
	}
	if c.EventLoop.StartingEvent == "" {
		c.EventLoop.StartingEvent = orchestrator.DefaultStartingEvent
	}
	if c.CLI.Backend.PromptMode == "" && c.CLI.Backend.Name == "" {
		c.CLI.Backend.PromptMode = "stdin"
	}
}

// Validate checks internal consistency. It runs after applyDefaults.
func (c *Config) Validate() error {
	if _, err := c.CLI.Backend.Resolve(); err != nil {
		return err
	}
	if c.CLI.Backend.Name == "" && c.CLI.Backend.Command == "" {
		return fmt.Errorf("cli.backend: must set either name or command")
	}
	for id, h := range c.Hats {
		if h.Backend != nil {
			if _, err := h.Backend.Resolve(); err != nil {
				return fmt.Errorf("hats.%s.backend: %w", id, err)
			}
		}
		for _, pattern := range h.Subscriptions {
			if !topic.Topic(pattern).IsValid() {
				return fmt.Errorf("hats.%s.subscriptions: invalid pattern %q", id, pattern)
			}
		}
	}
	return nil
}

// BuildRegistry constructs a sealed hat.Registry from the Hats mapping in
// the order hats appeared in the source YAML document (see HatOrder).
func (c *Config) BuildRegistry() (*hat.Registry, error) {
	registry := hat.NewRegistry()
	for _, id := range c.hatOrder {
		hc, ok := c.Hats[id]
		if !ok {
			return nil, fmt.Errorf("config: hats order references unknown id %q", id)
		}
		h := &hat.Hat{
			ID:            id,
			DisplayName:   hc.DisplayName,
			Instructions:  hc.Instructions,
			Subscriptions: toTopics(hc.Subscriptions),
			Publishes:     toTopics(hc.Publishes),
		}
		if hc.Backend != nil {
			resolved, err := hc.Backend.Resolve()
			if err != nil {
				return nil, err
			}
			execCfg := resolved.ToExecutorConfig()
			h.BackendOverride = &execCfg
		}
		if err := registry.Register(h); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func toTopics(patterns []string) []topic.Topic {
	out := make([]topic.Topic, len(patterns))
	for i, p := range patterns {
		out[i] = topic.Topic(p)
	}
	return out
}
