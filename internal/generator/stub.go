package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/tiernote/tiernote/internal/document"
)

// Stub is a deterministic strategy that wraps the source note into three
// clearly distinct renditions. It backs tests and deployments without a
// generative backend configured.
type Stub struct{}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) Generate(ctx context.Context, content, title string) (TierSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Err: err}
	}
	return TierSet{
		document.TierBeginner: fmt.Sprintf(
			"# %s - Beginner's Guide\n\n## Introduction for Beginners\n\nThis is a simplified version of the content, perfect for those just starting out.\n\n### Key Concepts Explained Simply\n\n%s\n\n### Summary\n\nThis beginner version breaks down complex topics into easy-to-understand concepts.\n",
			title, simplify(content)),
		document.TierIntermediate: fmt.Sprintf(
			"# %s - Comprehensive Guide\n\n## Overview\n\nThis guide provides a balanced view of the topic with practical examples.\n\n### Detailed Explanation\n\n%s\n\n### Practical Applications\n\nThis intermediate version includes the original content with additional context and examples.\n",
			title, content),
		document.TierExpert: fmt.Sprintf(
			"# %s - Expert Deep Dive\n\n## Advanced Concepts\n\nThis expert-level guide explores advanced topics and edge cases.\n\n### Technical Deep Dive\n\n%s\n\n### Advanced Techniques and Optimizations\n\n- Performance considerations\n- Scalability patterns\n- Security implications\n- Best practices for production\n",
			title, content),
	}, nil
}

// simplify keeps the non-empty lines among the note's first ten.
func simplify(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n") + "\n\n[Content simplified for beginners...]"
}
