package markdown

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ExcerptBudget is the character budget for generated excerpts.
const ExcerptBudget = 150

// wordsPerMinute is the reading speed assumed for read-time estimates.
const wordsPerMinute = 200

// Meta is the metadata derived from a validated note.
type Meta struct {
	Title       string
	Excerpt     string
	Tags        []string
	ReadTimeMin int
}

// TagPolicy derives a tag set from raw content. The default is a fixed
// policy; callers needing real tag inference inject their own.
type TagPolicy func(content string) []string

// DefaultTags is the fixed tag policy applied to every upload.
func DefaultTags(string) []string {
	return []string{"Tech", "Tutorial", "Documentation"}
}

// Extract derives title, excerpt, tags and read time from validated raw
// markdown plus the original filename. tags may be nil to use DefaultTags.
func Extract(content, filename string, tags TagPolicy) Meta {
	if tags == nil {
		tags = DefaultTags
	}
	return Meta{
		Title:       ExtractTitle(content, filename),
		Excerpt:     Excerpt(content, ExcerptBudget),
		Tags:        tags(content),
		ReadTimeMin: ReadTime(content),
	}
}

var h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// ExtractTitle returns the text of the first level-1 heading, falling back
// to the filename with its extension stripped and separators spaced out.
func ExtractTitle(content, filename string) string {
	if m := h1Re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	name := strings.TrimSuffix(filename, ".md")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

var mdSyntaxRe = regexp.MustCompile("[#*`\\[\\]()]")

// Excerpt returns the first non-empty paragraph with markdown syntax
// characters stripped, truncated to maxLen on a word boundary with an
// ellipsis appended when truncation happened.
func Excerpt(content string, maxLen int) string {
	clean := mdSyntaxRe.ReplaceAllString(content, "")
	for _, para := range strings.Split(clean, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= maxLen {
			return para
		}
		// never split a multibyte rune at the cut point
		end := maxLen
		for end > 0 && !utf8.RuneStart(para[end]) {
			end--
		}
		cut := para[:end]
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return cut + "..."
	}
	return ""
}

// ReadTime estimates reading time in whole minutes, never below one.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	min := int(math.Round(float64(words) / wordsPerMinute))
	if min < 1 {
		min = 1
	}
	return min
}
