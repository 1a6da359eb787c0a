// Package config loads and validates the orchestrator's run configuration
// from a single YAML file: the CLI backend to invoke, the event-loop
// safeguard bounds, and an optional hats mapping. Absence of hats selects
// single-hat mode; the orchestrator package is responsible for
// synthesizing the default hat in that case.
//
// Load reads a file path, expands environment variables the way a
// deployment's secrets (API keys, tokens) are conventionally supplied,
// applies documented defaults, and validates the result. Optional parts
// keep their zero values after Load: the hats mapping may be nil, a hat's
// backend override may be nil, and zero-valued bounds mean unbounded.
package config
