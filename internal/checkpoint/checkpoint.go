package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/ralphloop/internal/orchestrator"
)

// FileCheckpointer writes each CheckpointSnapshot as a pretty-printed JSON
// document to a single path, overwriting the previous checkpoint. It
// implements orchestrator.Checkpointer.
type FileCheckpointer struct {
	path  string
	runID string
}

// NewFileCheckpointer returns a FileCheckpointer that overwrites path on
// every Checkpoint call. A run ID is generated once and stamped into every
// snapshot so checkpoints from different invocations aren't confused when
// path is reused (e.g. a shared checkpoints/ directory).
func NewFileCheckpointer(path string) *FileCheckpointer {
	return &FileCheckpointer{path: path, runID: uuid.NewString()}
}

// Checkpoint implements orchestrator.Checkpointer.
func (f *FileCheckpointer) Checkpoint(snapshot orchestrator.CheckpointSnapshot) error {
	doc := "{}"
	doc, _ = sjson.Set(doc, "run_id", f.runID)
	doc, _ = sjson.Set(doc, "iteration", snapshot.Iteration)
	doc, _ = sjson.Set(doc, "reason", snapshot.Reason)
	doc, _ = sjson.Set(doc, "consecutive_failures", snapshot.ConsecutiveFailures)
	doc, _ = sjson.Set(doc, "cumulative_cost_usd", snapshot.CumulativeCostUSD)
	doc, _ = sjson.Set(doc, "elapsed_seconds", snapshot.ElapsedSeconds)
	doc, _ = sjson.Set(doc, "written_at", time.Now().UTC().Format(time.RFC3339))

	formatted := pretty.Pretty([]byte(doc))

	return f.writeAtomic(formatted)
}

// writeAtomic writes data to a temp file in the same directory as f.path
// and renames it into place, so a crash mid-write never leaves a
// half-written checkpoint behind.
func (f *FileCheckpointer) writeAtomic(data []byte) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".checkpoint-*.tmp")
	if err != nil {
		return fmt.Errorf("checkpoint: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("checkpoint: write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("checkpoint: close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("checkpoint: rename into %s: %w", f.path, err)
	}
	return nil
}
