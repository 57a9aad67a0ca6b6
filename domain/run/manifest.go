package run

import (
	"synaptology/domain/core"
)

// Manifest records what a run consumed so a report can be traced back to its inputs.
type Manifest struct {
	RunID        core.RunID     `json:"run_id"`
	Command      string         `json:"command"`
	InputHash    core.Hash      `json:"input_hash"`
	InputCount   int            `json:"input_count"`
	SubjectTable string         `json:"subject_table,omitempty"`
	CreatedAt    core.Timestamp `json:"created_at"`
}

// NewManifest creates a manifest for a run over the given input paths.
func NewManifest(command string, inputs []string, subjectTable string) *Manifest {
	return &Manifest{
		RunID:        core.RunID(core.NewID()),
		Command:      command,
		InputHash:    core.InputSetHash(inputs),
		InputCount:   len(inputs),
		SubjectTable: subjectTable,
		CreatedAt:    core.Now(),
	}
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("run_manifest", "run_id cannot be empty")
	}
	if m.Command == "" {
		return core.NewValidationError("run_manifest", "command cannot be empty")
	}
	if m.InputHash.IsEmpty() {
		return core.NewValidationError("run_manifest", "input_hash cannot be empty")
	}
	return nil
}
