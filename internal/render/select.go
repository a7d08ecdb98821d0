// Package render maps a continuous expertise selector onto a discrete
// tier, resolves missing tiers through an explicit fallback chain, and
// turns markdown bodies into a structural display tree.
package render

import (
	"errors"

	"github.com/tiernote/tiernote/internal/document"
)

// Selector thresholds. The selector is a position in [0,100]; positions at
// or below a threshold map to that tier.
const (
	BeginnerMax     = 25
	IntermediateMax = 75
	// DefaultPosition is the selector position assumed when the caller
	// provides none; it lands on the intermediate tier.
	DefaultPosition = 50
)

// SelectTier maps a selector position to its tier.
func SelectTier(pos int) document.Tier {
	switch {
	case pos <= BeginnerMax:
		return document.TierBeginner
	case pos <= IntermediateMax:
		return document.TierIntermediate
	default:
		return document.TierExpert
	}
}

// ErrNoContent is returned when a document carries no tier bodies at all.
var ErrNoContent = errors.New("document has no tier content")

// Resolve looks up the requested tier's body. When it is absent the chain
// intermediate, beginner, then first available key (sorted) is tried, and
// fellBack reports that a substitution happened so callers can
// surface it instead of silently swapping content.
func Resolve(doc *document.Document, requested document.Tier) (body string, resolved document.Tier, fellBack bool, err error) {
	if body, ok := doc.Content[requested]; ok && body != "" {
		return body, requested, false, nil
	}
	for _, t := range []document.Tier{document.TierIntermediate, document.TierBeginner} {
		if t == requested {
			continue
		}
		if body, ok := doc.Content[t]; ok && body != "" {
			return body, t, true, nil
		}
	}
	for _, key := range doc.TierKeys() {
		t := document.Tier(key)
		if body := doc.Content[t]; body != "" {
			return body, t, true, nil
		}
	}
	return "", "", false, ErrNoContent
}
