// Package markdown implements the structural checks and metadata
// extraction the upload pipeline runs before any content generation.
package markdown

import (
	"regexp"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`(?m)^#+\s`)
	boldRe     = regexp.MustCompile(`\*\*.*\*\*`)
	emphasisRe = regexp.MustCompile(`\*.*\*`)
	listItemRe = regexp.MustCompile(`(?m)^[-*+]\s`)
)

// Validate runs structural sanity checks on raw markdown and returns the
// ordered list of defects found. It never mutates its input: the same text
// always yields the same verdict and defect list.
func Validate(content string) (bool, []string) {
	var defects []string

	if strings.TrimSpace(content) == "" {
		return false, []string{"Content is empty"}
	}

	if strings.Count(content, "```")%2 != 0 {
		defects = append(defects, "Unclosed code block detected")
	}

	if strings.Count(content, "[") != strings.Count(content, "]") {
		defects = append(defects, "Unclosed link bracket detected")
	}

	// downstream extraction assumes at least some structure
	if !headingRe.MatchString(content) &&
		!boldRe.MatchString(content) &&
		!emphasisRe.MatchString(content) &&
		!listItemRe.MatchString(content) {
		defects = append(defects, "No markdown formatting detected")
	}

	return len(defects) == 0, defects
}
