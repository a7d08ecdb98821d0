package upload

import (
	"fmt"
	"strings"
)

// Stage names a step of the upload pipeline, used in failure reporting.
type Stage string

const (
	StageReceived  Stage = "received"
	StageValidated Stage = "validated"
	StageExtracted Stage = "extracted"
	StageGenerated Stage = "generated"
	StagePersisted Stage = "persisted"
	StageCompleted Stage = "completed"
)

// ValidationError is a permanent, client-fixable failure. Defects are safe
// to report verbatim.
type ValidationError struct {
	Defects []string
}

func (e *ValidationError) Error() string {
	return "invalid markdown: " + strings.Join(e.Defects, ", ")
}

// GenerationError means the generation backend failed after the bounded
// retry budget was spent. The wrapped cause must not leak to clients.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError means the repository write failed permanently. No
// partial document is left behind: the document is only ever written whole.
type PersistenceError struct {
	Attempts int
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
