package orchestrator

import "strings"

// preambleTemplate is the orchestration preamble prepended to every
// composed prompt. {prompt_content} is substituted with the configured
// completion sentinel; the triggering event's payload is appended after the
// hat's instructions by ComposePrompt.
const preambleTemplate = `You are operating inside an autonomous orchestration loop.
Work in small, verifiable steps. Consult and update .agent/scratchpad.md to
carry state across iterations. When the task described below is fully
complete, print the literal string {prompt_content} on its own line and
nothing else after it. To hand off or signal other collaborators, emit
<event topic="TOPIC"[ target="HAT_ID"]>PAYLOAD</event> markers in your
output; they are parsed out of the stream and republished.
`

// singleHatInstructions is the fixed instruction template synthesized for
// the implicit "default" hat in single-hat mode.
const singleHatInstructions = `Continue making progress on the task below. Re-read
.agent/scratchpad.md first if it exists. Work the smallest next increment
you can verify, then leave the scratchpad updated for the next iteration.`

// ComposePrompt builds one iteration's prompt by concatenating, in this
// fixed order: the orchestration preamble (with the sentinel substituted
// in), the dispatched hat's instructions, and the triggering event's
// payload. Implementers must not reorder these parts.
func ComposePrompt(completionPromise, hatInstructions, eventPayload string) string {
	preamble := strings.ReplaceAll(preambleTemplate, "{prompt_content}", completionPromise)
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n")
	b.WriteString(hatInstructions)
	b.WriteString("\n\n")
	b.WriteString(eventPayload)
	return b.String()
}
