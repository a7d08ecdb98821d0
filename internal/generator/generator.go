// Package generator produces the three expertise-tier renditions of an
// uploaded note. Implementations are swappable strategies behind a single
// interface; the upload pipeline does not care which one is wired in.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tiernote/tiernote/internal/document"
)

// TierSet maps every expertise tier to a generated body. A TierSet returned
// from a Strategy is always complete: partial maps are never produced.
type TierSet map[document.Tier]string

// Complete reports whether all three tiers carry content.
func (ts TierSet) Complete() bool {
	for _, t := range document.Tiers {
		if ts[t] == "" {
			return false
		}
	}
	return true
}

// Strategy generates all tiers from one source note. Implementations must
// return either a complete TierSet or an error, never a partial result.
// Blocking implementations must honor ctx cancellation.
type Strategy interface {
	Generate(ctx context.Context, content, title string) (TierSet, error)
}

// Error is the typed failure a Strategy surfaces. Retryable marks
// transient backend failures the caller may retry a bounded number of times.
type Error struct {
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tier generation failed: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a generation error worth retrying.
func IsRetryable(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Retryable
	}
	return false
}
