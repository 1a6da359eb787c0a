// Package main is the entry point for the ralphloop orchestrator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/ralphloop/internal/checkpoint"
	"github.com/dshills/ralphloop/internal/config"
	"github.com/dshills/ralphloop/internal/event"
	"github.com/dshills/ralphloop/internal/hat"
	"github.com/dshills/ralphloop/internal/logging"
	"github.com/dshills/ralphloop/internal/orchestrator"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	configPath     string
	promptPath     string
	logLevel       string
	logJSON        bool
	checkpointPath string
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}

// exitCode is set by runLoop and read back by run(), since cobra's RunE
// only distinguishes error/no-error, not the orchestrator's four-way exit
// status contract.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "ralph",
	Short: "ralph runs an autonomous CLI-agent orchestration loop",
	Long: `ralph drives a configured CLI agent (or set of hats, each with
its own agent) through an event-driven loop: it seeds a prompt, dispatches
to the hat whose subscriptions match the next ready event, runs that
hat's subprocess, republishes the events the agent emitted, and stops on
sentinel detection, a safeguard bound, or an empty event queue.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	RunE:    runLoop,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "ralph.yaml", "path to the YAML configuration file")
	rootCmd.Flags().StringVarP(&promptPath, "prompt", "p", "PROMPT.md", "path to the seed prompt file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "output logs as JSON instead of console text")
	rootCmd.Flags().StringVar(&checkpointPath, "checkpoint-file", "", "path to write periodic run checkpoints (disabled if empty)")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logging.Init(logging.Config{
		Level:      logging.Level(logLevel),
		JSONOutput: logJSON,
	})
}

func runLoop(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitCode = 1
		return err
	}

	promptBytes, err := os.ReadFile(promptPath)
	if err != nil {
		exitCode = 1
		return fmt.Errorf("reading prompt file: %w", err)
	}

	registry := hat.NewRegistry()
	if len(cfg.Hats) > 0 {
		registry, err = cfg.BuildRegistry()
		if err != nil {
			exitCode = 1
			return err
		}
	}

	resolvedBackend, err := cfg.CLI.Backend.Resolve()
	if err != nil {
		exitCode = 1
		return err
	}
	backend := orchestrator.NewStaticBackend(resolvedBackend.ToExecutorConfig())

	bus := event.NewBus(registry, logging.Logger)

	var checkpointer orchestrator.Checkpointer = orchestrator.NopCheckpointer{}
	if checkpointPath != "" {
		checkpointer = checkpoint.NewFileCheckpointer(checkpointPath)
	}

	o, err := orchestrator.New(cfg.EventLoop.ToLoopConfig(), registry, bus, backend, os.Stdout, checkpointer, logging.Logger)
	if err != nil {
		exitCode = 1
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	reason := o.Run(ctx, string(promptBytes))
	exitCode = reason.ExitCode()
	return nil
}
