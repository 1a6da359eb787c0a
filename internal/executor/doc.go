// Package executor spawns a configured CLI backend, delivers a prompt via
// argument or stdin, merges the child's stdout and stderr into a single
// byte stream, enforces a per-invocation timeout with a SIGTERM-then-SIGKILL
// escalation, and reports a structured Outcome. It never decides whether
// the orchestration loop should stop; it only reports facts about one
// subprocess invocation.
package executor
