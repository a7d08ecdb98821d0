package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiernote/tiernote/internal/document"
)

func TestStub_AlwaysCompleteTierSet(t *testing.T) {
	s := NewStub()
	for _, content := range []string{"# Hi\n\nbody", "x", strings.Repeat("line\n", 50)} {
		tiers, err := s.Generate(context.Background(), content, "Hi")
		require.NoError(t, err)
		require.Len(t, tiers, 3)
		require.True(t, tiers.Complete())
		for _, tier := range document.Tiers {
			require.NotEmpty(t, tiers[tier])
		}
	}
}

func TestStub_TiersDiffer(t *testing.T) {
	s := NewStub()
	tiers, err := s.Generate(context.Background(), "# Topic\n\ncontent body", "Topic")
	require.NoError(t, err)
	require.Contains(t, tiers[document.TierBeginner], "Beginner's Guide")
	require.Contains(t, tiers[document.TierIntermediate], "Comprehensive Guide")
	require.Contains(t, tiers[document.TierExpert], "Expert Deep Dive")
	// intermediate and expert embed the full original content
	require.Contains(t, tiers[document.TierIntermediate], "content body")
	require.Contains(t, tiers[document.TierExpert], "content body")
}

func TestStub_Deterministic(t *testing.T) {
	s := NewStub()
	a, err := s.Generate(context.Background(), "# X\n\nsame input", "X")
	require.NoError(t, err)
	b, err := s.Generate(context.Background(), "# X\n\nsame input", "X")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestStub_CanceledContext(t *testing.T) {
	s := NewStub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Generate(ctx, "# X\n\nbody", "X")
	require.Error(t, err)
}
