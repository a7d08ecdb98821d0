package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiernote/tiernote/internal/document"
)

func TestSelectTier_Boundaries(t *testing.T) {
	cases := []struct {
		pos  int
		want document.Tier
	}{
		{0, document.TierBeginner},
		{25, document.TierBeginner},
		{26, document.TierIntermediate},
		{50, document.TierIntermediate},
		{75, document.TierIntermediate},
		{76, document.TierExpert},
		{100, document.TierExpert},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, SelectTier(tc.pos), "position %d", tc.pos)
	}
}

func TestSelectTier_DefaultPositionIsIntermediate(t *testing.T) {
	require.Equal(t, document.TierIntermediate, SelectTier(DefaultPosition))
}

func fullDoc() *document.Document {
	return &document.Document{
		ID: "doc-1",
		Content: map[document.Tier]string{
			document.TierBeginner:     "beginner body",
			document.TierIntermediate: "intermediate body",
			document.TierExpert:       "expert body",
		},
	}
}

func TestResolve_DirectHit(t *testing.T) {
	body, resolved, fellBack, err := Resolve(fullDoc(), document.TierExpert)
	require.NoError(t, err)
	require.Equal(t, "expert body", body)
	require.Equal(t, document.TierExpert, resolved)
	require.False(t, fellBack)
}

func TestResolve_MissingExpertFallsBackToIntermediate(t *testing.T) {
	d := fullDoc()
	delete(d.Content, document.TierExpert)

	body, resolved, fellBack, err := Resolve(d, SelectTier(100))
	require.NoError(t, err)
	require.Equal(t, "intermediate body", body)
	require.Equal(t, document.TierIntermediate, resolved)
	require.True(t, fellBack)
}

func TestResolve_ChainReachesBeginner(t *testing.T) {
	d := fullDoc()
	delete(d.Content, document.TierExpert)
	delete(d.Content, document.TierIntermediate)

	body, resolved, fellBack, err := Resolve(d, document.TierExpert)
	require.NoError(t, err)
	require.Equal(t, "beginner body", body)
	require.Equal(t, document.TierBeginner, resolved)
	require.True(t, fellBack)
}

func TestResolve_FirstAvailableKey(t *testing.T) {
	d := &document.Document{Content: map[document.Tier]string{
		document.TierExpert: "expert body",
	}}
	body, resolved, fellBack, err := Resolve(d, document.TierBeginner)
	require.NoError(t, err)
	require.Equal(t, "expert body", body)
	require.Equal(t, document.TierExpert, resolved)
	require.True(t, fellBack)
}

func TestResolve_NoContent(t *testing.T) {
	_, _, _, err := Resolve(&document.Document{}, document.TierIntermediate)
	require.ErrorIs(t, err, ErrNoContent)
}
