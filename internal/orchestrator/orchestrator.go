package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/ralphloop/internal/event"
	"github.com/dshills/ralphloop/internal/executor"
	"github.com/dshills/ralphloop/internal/hat"
	"github.com/dshills/ralphloop/internal/parser"
	"github.com/dshills/ralphloop/internal/topic"
)

// taskContinueTopic is republished after every non-interrupted iteration
// without the completion sentinel in single-hat mode, whatever the child's
// exit status, so the synthesized default hat is
// re-dispatched. Multi-hat mode never publishes it implicitly.
const taskContinueTopic = topic.Topic("task.continue")

// DefaultHatID names the hat synthesized for single-hat mode.
const DefaultHatID = "default"

// Backend resolves the executor configuration to use for a given hat,
// falling back to the loop's default backend when the hat has none of its
// own. Kept as an interface (rather than a bare executor.Config) so the
// orchestrator never needs to know how a hat's override was decided.
type Backend interface {
	ConfigFor(h *hat.Hat) executor.Config
}

// staticBackend always returns the same default config unless the hat
// carries its own override.
type staticBackend struct {
	def executor.Config
}

// ConfigFor implements Backend.
func (b staticBackend) ConfigFor(h *hat.Hat) executor.Config {
	if h.BackendOverride != nil {
		return *h.BackendOverride
	}
	return b.def
}

// NewStaticBackend returns a Backend that always uses def unless a hat
// specifies BackendOverride.
func NewStaticBackend(def executor.Config) Backend {
	return staticBackend{def: def}
}

// Orchestrator drives one end-to-end run of the event loop.
type Orchestrator struct {
	cfg          LoopConfig
	registry     *hat.Registry
	bus          *event.Bus
	backend      Backend
	sink         OutputSink
	checkpointer Checkpointer
	logger       zerolog.Logger
	singleHat    bool
}

// New builds an Orchestrator. If registry has no registered hats, single-hat
// mode is synthesized automatically: a "default" hat subscribed to "*"
// with a fixed instruction template is registered and the implicit
// task.continue republish is enabled.
func New(cfg LoopConfig, registry *hat.Registry, bus *event.Bus, backend Backend, sink OutputSink, checkpointer Checkpointer, logger zerolog.Logger) (*Orchestrator, error) {
	cfg = cfg.WithDefaults()
	singleHat := registry.Len() == 0

	if singleHat {
		defaultHat := &hat.Hat{
			ID:            DefaultHatID,
			DisplayName:   "default",
			Subscriptions: []topic.Topic{"*"},
			Instructions:  singleHatInstructions,
		}
		if err := registry.Register(defaultHat); err != nil {
			return nil, fmt.Errorf("orchestrator: synthesizing single-hat mode: %w", err)
		}
	}

	for _, id := range registry.Order() {
		h, _ := registry.Get(id)
		for _, pattern := range h.Subscriptions {
			bus.Subscribe(id, pattern)
		}
	}

	if checkpointer == nil {
		checkpointer = NopCheckpointer{}
	}

	return &Orchestrator{
		cfg:          cfg,
		registry:     registry,
		bus:          bus,
		backend:      backend,
		sink:         sink,
		checkpointer: checkpointer,
		logger:       logger,
		singleHat:    singleHat,
	}, nil
}

// Run executes the state machine to completion, returning the termination
// reason. promptContent is the full text of the seed prompt file.
func (o *Orchestrator) Run(ctx context.Context, promptContent string) TerminationReason {
	st := NewLoopState(time.Now())

	o.bus.Publish(event.Event{
		Topic:   topic.Topic(o.cfg.StartingEvent),
		Payload: promptContent,
	})

	for {
		select {
		case <-ctx.Done():
			o.logger.Info().Msg("interruption signal received")
			return o.terminate(st, ReasonInterrupted)
		default:
		}

		evt, hatID, ok := o.bus.NextReady()
		if !ok {
			return o.terminate(st, ReasonDrained)
		}

		h, _ := o.registry.Get(hatID)
		reason := o.runIteration(ctx, st, h, evt)
		if reason != ReasonNone {
			return o.terminate(st, reason)
		}
	}
}

// runIteration performs Running then Evaluating for one dispatched event,
// returning a non-empty TerminationReason if the run must stop.
func (o *Orchestrator) runIteration(ctx context.Context, st *LoopState, h *hat.Hat, evt event.Event) TerminationReason {
	prompt := ComposePrompt(o.cfg.CompletionPromise, h.Instructions, evt.Payload)

	cfg := o.backend.ConfigFor(h)
	exec := executor.New(cfg, o.cfg.CompletionPromise, o.logger)

	outcome, err := exec.Run(ctx, prompt, o.sink)
	st.Iteration++

	if err != nil {
		o.logger.Error().Err(err).Str("hat", h.ID).Msg("iteration spawn failed")
		st.RecordFailure()
		return checkSafeguards(o.cfg, st, time.Now())
	}

	for _, w := range outcome.ParseWarnings {
		o.logger.Warn().Str("hat", h.ID).Msg(w)
	}

	if outcome.Interrupted {
		// Parsed events from an interrupted iteration are discarded, not
		// published: the loop is about to stop, not advance.
		return ReasonInterrupted
	}

	for _, extracted := range outcome.EventsExtracted {
		o.ingestExtractedEvent(st, h.ID, extracted)
	}

	if outcome.Failed {
		st.RecordFailure()
	} else {
		st.RecordSuccess(time.Now())
	}

	// Single-hat mode re-dispatches the default hat after every completed
	// iteration that didn't hit the sentinel, exit status notwithstanding —
	// a classic Ralph loop retries through failures rather than stalling
	// on the first nonzero exit. checkSafeguards still stops it once
	// max_consecutive_failures (or any other bound) trips.
	if o.singleHat && !outcome.CompletionDetected {
		o.bus.Publish(event.Event{Topic: taskContinueTopic, Source: h.ID})
	}

	if o.cfg.CheckpointInterval > 0 && st.Iteration%o.cfg.CheckpointInterval == 0 {
		snapshot := CheckpointSnapshot{
			Iteration:           st.Iteration,
			Reason:              "interval",
			ConsecutiveFailures: st.ConsecutiveFailures,
			CumulativeCostUSD:   st.CumulativeCostUSD,
			ElapsedSeconds:      time.Since(st.StartTime).Seconds(),
		}
		if err := o.checkpointer.Checkpoint(snapshot); err != nil {
			o.logger.Warn().Err(err).Msg("checkpoint failed")
		}
		st.LastCheckpointIteration = st.Iteration
	}

	if outcome.CompletionDetected {
		return ReasonComplete
	}

	return checkSafeguards(o.cfg, st, time.Now())
}

// ingestExtractedEvent publishes one parser-extracted event onto the bus
// and, if it carries a meta.cost payload, folds it into cumulative cost.
func (o *Orchestrator) ingestExtractedEvent(st *LoopState, sourceHatID string, extracted parser.ExtractedEvent) {
	o.bus.Publish(event.Event{
		Topic:   topic.Topic(extracted.Topic),
		Payload: extracted.Payload,
		Source:  sourceHatID,
		Target:  extracted.Target,
	})
	if topic.Topic(extracted.Topic) == costEventTopic {
		if usd, ok := extractCostUSD(extracted.Payload); ok {
			st.CumulativeCostUSD += usd
		}
	}
}

// terminate logs and returns the final reason, stamping it onto st for
// callers that inspect LoopState afterward.
func (o *Orchestrator) terminate(st *LoopState, reason TerminationReason) TerminationReason {
	st.TerminationReason = reason
	elapsed := time.Since(st.StartTime)
	o.logger.Info().Msg(FinalSummary(reason, st.Iteration, elapsed, st.CumulativeCostUSD))
	return reason
}

