package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block kinds of the display tree.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockList      = "list"
	BlockQuote     = "blockquote"
	BlockCode      = "code"
)

// Inline kinds.
const (
	InlineText   = "text"
	InlineCode   = "code"
	InlineLink   = "link"
	InlineStrong = "strong"
	InlineEm     = "em"
)

// Inline is one run of styled text inside a block.
type Inline struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Block is one node of the display tree. Code blocks carry their declared
// language and a copy-affordance id; the client copies the Code payload and
// reports failure through its own transient notification when the clipboard
// is unavailable.
type Block struct {
	Type     string     `json:"type"`
	Level    int        `json:"level,omitempty"`
	Inlines  []Inline   `json:"inlines,omitempty"`
	Ordered  bool       `json:"ordered,omitempty"`
	Items    [][]Inline `json:"items,omitempty"`
	Children []Block    `json:"children,omitempty"`
	Language string     `json:"language,omitempty"`
	Code     string     `json:"code,omitempty"`
	CopyID   string     `json:"copyId,omitempty"`
	Copyable bool       `json:"copyable,omitempty"`
}

// BuildTree parses markdown into the display tree. The transformation is
// pure; memoization lives in Renderer.
func BuildTree(content string) []Block {
	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	b := &treeBuilder{src: src}
	return b.blocks(doc)
}

type treeBuilder struct {
	src     []byte
	codeSeq int
}

func (b *treeBuilder) blocks(parent ast.Node) []Block {
	var out []Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			out = append(out, Block{
				Type:    BlockHeading,
				Level:   node.Level,
				Inlines: b.inlines(node),
			})
		case *ast.Paragraph:
			out = append(out, Block{
				Type:    BlockParagraph,
				Inlines: b.inlines(node),
			})
		case *ast.List:
			out = append(out, b.list(node))
		case *ast.Blockquote:
			out = append(out, Block{
				Type:     BlockQuote,
				Children: b.blocks(node),
			})
		case *ast.FencedCodeBlock:
			b.codeSeq++
			out = append(out, Block{
				Type:     BlockCode,
				Language: string(node.Language(b.src)),
				Code:     b.blockText(node),
				CopyID:   fmt.Sprintf("code-%d", b.codeSeq),
				Copyable: true,
			})
		case *ast.CodeBlock:
			b.codeSeq++
			out = append(out, Block{
				Type:     BlockCode,
				Code:     b.blockText(node),
				CopyID:   fmt.Sprintf("code-%d", b.codeSeq),
				Copyable: true,
			})
		case *ast.TextBlock:
			out = append(out, Block{
				Type:    BlockParagraph,
				Inlines: b.inlines(node),
			})
		}
	}
	return out
}

func (b *treeBuilder) list(node *ast.List) Block {
	blk := Block{Type: BlockList, Ordered: node.IsOrdered()}
	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		var ins []Inline
		// list item content usually sits in a TextBlock or Paragraph child
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			ins = append(ins, b.inlines(c)...)
		}
		blk.Items = append(blk.Items, ins)
	}
	return blk
}

func (b *treeBuilder) inlines(parent ast.Node) []Inline {
	var out []Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			t := string(node.Value(b.src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				t += "\n"
			}
			out = append(out, Inline{Type: InlineText, Text: t})
		case *ast.CodeSpan:
			out = append(out, Inline{Type: InlineCode, Text: b.flatten(node)})
		case *ast.Link:
			out = append(out, Inline{
				Type: InlineLink,
				Text: b.flatten(node),
				Href: string(node.Destination),
			})
		case *ast.AutoLink:
			url := string(node.URL(b.src))
			out = append(out, Inline{Type: InlineLink, Text: url, Href: url})
		case *ast.Emphasis:
			kind := InlineEm
			if node.Level >= 2 {
				kind = InlineStrong
			}
			out = append(out, Inline{Type: kind, Text: b.flatten(node)})
		default:
			if t := b.flatten(n); t != "" {
				out = append(out, Inline{Type: InlineText, Text: t})
			}
		}
	}
	return out
}

// flatten collapses any inline subtree into its plain text.
func (b *treeBuilder) flatten(n ast.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(b.src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(b.flatten(c))
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

// blockText joins the raw source lines of a block node.
func (b *treeBuilder) blockText(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(b.src))
	}
	return strings.TrimRight(buf.String(), "\n")
}
