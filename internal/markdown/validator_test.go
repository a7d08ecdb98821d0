package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsStructuredMarkdown(t *testing.T) {
	cases := []string{
		"# Title\n\nSome body text.",
		"A note with **bold** emphasis only.",
		"- first item\n- second item",
		"# Doc\n\n```go\nfmt.Println(\"hi\")\n```\n",
		"[link](https://example.com) and a *stressed* word",
	}
	for _, content := range cases {
		ok, defects := Validate(content)
		require.True(t, ok, "expected %q to pass, defects: %v", content, defects)
		require.Empty(t, defects)
	}
}

func TestValidate_EmptyContent(t *testing.T) {
	for _, content := range []string{"", "   \n\t  "} {
		ok, defects := Validate(content)
		require.False(t, ok)
		require.Equal(t, []string{"Content is empty"}, defects)
	}
}

func TestValidate_UnclosedCodeFence(t *testing.T) {
	ok, defects := Validate("# Title\n\n```go\nfmt.Println(\"hi\")\n")
	require.False(t, ok)
	require.Contains(t, defects, "Unclosed code block detected")
}

func TestValidate_UnbalancedLinkBrackets(t *testing.T) {
	ok, defects := Validate("# Title\n\nSee [broken link(https://example.com)")
	require.False(t, ok)
	require.Contains(t, defects, "Unclosed link bracket detected")
}

func TestValidate_NoFormatting(t *testing.T) {
	ok, defects := Validate("just a plain sentence without any markup at all")
	require.False(t, ok)
	require.Equal(t, []string{"No markdown formatting detected"}, defects)
}

func TestValidate_CollectsMultipleDefects(t *testing.T) {
	ok, defects := Validate("# Title\n\n```\nunclosed fence and [stray bracket")
	require.False(t, ok)
	require.Len(t, defects, 2)
	// defect order is stable
	require.Equal(t, "Unclosed code block detected", defects[0])
	require.Equal(t, "Unclosed link bracket detected", defects[1])
}

func TestValidate_Idempotent(t *testing.T) {
	content := "# Title\n\n```\nbad fence and [stray"
	ok1, defects1 := Validate(content)
	ok2, defects2 := Validate(content)
	require.Equal(t, ok1, ok2)
	require.Equal(t, defects1, defects2)
}
