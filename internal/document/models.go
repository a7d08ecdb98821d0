package document

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Tier names one expertise variant of a document's content.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierExpert       Tier = "expert"
)

// Tiers lists every tier a complete document must carry, lowest first.
var Tiers = []Tier{TierBeginner, TierIntermediate, TierExpert}

// ParseTier converts a wire value into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierBeginner:
		return TierBeginner, nil
	case TierIntermediate:
		return TierIntermediate, nil
	case TierExpert:
		return TierExpert, nil
	}
	return "", fmt.Errorf("unknown expertise tier %q", s)
}

// Classification distinguishes curated content from user submissions.
type Classification string

const (
	ClassOfficial  Classification = "official"
	ClassCommunity Classification = "community"
)

// ParseClassification rejects anything outside the two known values.
// Unrecognized values are an error at the ingestion boundary, never
// silently remapped to a default.
func ParseClassification(s string) (Classification, error) {
	switch Classification(strings.ToLower(strings.TrimSpace(s))) {
	case ClassOfficial:
		return ClassOfficial, nil
	case ClassCommunity:
		return ClassCommunity, nil
	}
	return "", fmt.Errorf("invalid classification %q: must be 'official' or 'community'", s)
}

// Author is the single normalized author shape. Upstream sources that
// provide only a display name are normalized into this struct on write.
type Author struct {
	Name   string `json:"name" bson:"name"`
	Avatar string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// Document is the persisted unit: derived metadata plus one body per tier.
// A document is created exactly once by a successful upload run and is
// read-only afterwards.
type Document struct {
	ID             string          `json:"id" bson:"id"`
	Title          string          `json:"title" bson:"title"`
	Excerpt        string          `json:"excerpt" bson:"excerpt"`
	Content        map[Tier]string `json:"content" bson:"content"`
	Author         Author          `json:"author" bson:"author"`
	Tags           []string        `json:"tags" bson:"tags"`
	Classification Classification  `json:"docType" bson:"docType"`
	ReadTimeMin    int             `json:"readTimeMinutes" bson:"readTimeMinutes"`
	CoverImage     string          `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
}

// Complete reports whether the content map carries every tier. Documents
// failing this must never reach the repository.
func (d *Document) Complete() bool {
	if d.Content == nil {
		return false
	}
	for _, t := range Tiers {
		if d.Content[t] == "" {
			return false
		}
	}
	return true
}

// TierKeys returns the tiers present on the document in a stable order.
func (d *Document) TierKeys() []string {
	keys := make([]string, 0, len(d.Content))
	for t := range d.Content {
		keys = append(keys, string(t))
	}
	sort.Strings(keys)
	return keys
}

// HasAnyTag reports whether the document carries at least one of the
// requested tags, case-insensitively.
func (d *Document) HasAnyTag(requested []string) bool {
	for _, want := range requested {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		for _, have := range d.Tags {
			if strings.ToLower(have) == want {
				return true
			}
		}
	}
	return false
}

// NormalizeTags trims, deduplicates (case-insensitively) and sorts a tag set.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
