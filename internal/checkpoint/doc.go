// Package checkpoint persists the orchestrator's run progress to a JSON
// file on disk every time the event loop's checkpoint interval fires.
// A checkpoint is a point-in-time snapshot, not a resumable save: ralph
// has no restart-from-checkpoint path today, the file exists so an
// operator (or a future resume feature) can see how far a long-running
// loop got without waiting for it to finish.
package checkpoint
