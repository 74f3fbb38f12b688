// Package markdown renders note content for the terminal preview and provides
// the editor's formatting helpers.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Styles controls how each markdown element is drawn
type Styles struct {
	Heading       lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style
	Quote         lipgloss.Style
	Link          lipgloss.Style
	Rule          lipgloss.Style
	Bullet        lipgloss.Style
}

// PlainStyles renders without color, used by the CLI and tests
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Heading: s, Bold: s, Italic: s, Strikethrough: s,
		Code: s, Quote: s, Link: s, Rule: s, Bullet: s,
	}
}

// Renderer turns markdown into styled terminal text
type Renderer struct {
	md     goldmark.Markdown
	styles Styles
	width  int
}

func NewRenderer(styles Styles, width int) *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		styles: styles,
		width:  width,
	}
}

// SetWidth changes the width used for horizontal rules
func (r *Renderer) SetWidth(w int) {
	r.width = w
}

// Render parses src and returns the styled result
func (r *Renderer) Render(src string) string {
	source := []byte(src)
	doc := r.md.Parser().Parse(text.NewReader(source))

	var blocks []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if b := r.block(c, source); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (r *Renderer) block(n ast.Node, src []byte) string {
	switch n := n.(type) {
	case *ast.Heading:
		return r.styles.Heading.Render(strings.Repeat("#", n.Level) + " " + r.inline(n, src))
	case *ast.Paragraph, *ast.TextBlock:
		return r.inline(n, src)
	case *ast.List:
		return r.list(n, src)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.styles.Code.Render(strings.TrimRight(rawLines(n, src), "\n"))
	case *ast.HTMLBlock:
		return strings.TrimRight(rawLines(n, src), "\n")
	case *ast.Blockquote:
		inner := r.children(n, src, "\n")
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			lines[i] = r.styles.Quote.Render("│ " + l)
		}
		return strings.Join(lines, "\n")
	case *ast.ThematicBreak:
		w := r.width
		if w <= 0 {
			w = 20
		}
		return r.styles.Rule.Render(strings.Repeat("─", w))
	case *extast.Table:
		return r.table(n, src)
	}
	return r.children(n, src, "\n")
}

func (r *Renderer) children(n ast.Node, src []byte, sep string) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if b := r.block(c, src); b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, sep)
}

func (r *Renderer) list(l *ast.List, src []byte) string {
	var lines []string
	i := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d.", i)
			i++
		}
		body := r.children(item, src, "\n")
		indent := strings.Repeat(" ", lipgloss.Width(marker)+1)
		for j, line := range strings.Split(body, "\n") {
			if j == 0 {
				lines = append(lines, r.styles.Bullet.Render(marker)+" "+line)
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) table(t *extast.Table, src []byte) string {
	var rows []string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell, src))
		}
		line := strings.Join(cells, " │ ")
		if _, ok := row.(*extast.TableHeader); ok {
			line = r.styles.Bold.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) inline(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.HardLineBreak() {
				b.WriteString("\n")
			} else if c.SoftLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.Emphasis:
			inner := r.inline(c, src)
			if c.Level >= 2 {
				b.WriteString(r.styles.Bold.Render(inner))
			} else {
				b.WriteString(r.styles.Italic.Render(inner))
			}
		case *ast.CodeSpan:
			b.WriteString(r.styles.Code.Render(r.inline(c, src)))
		case *ast.Link:
			b.WriteString(r.styles.Link.Render(r.inline(c, src)))
			b.WriteString(" (" + string(c.Destination) + ")")
		case *ast.AutoLink:
			b.WriteString(r.styles.Link.Render(string(c.URL(src))))
		case *ast.Image:
			b.WriteString("[image: " + r.inline(c, src) + "]")
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				b.Write(seg.Value(src))
			}
		case *extast.Strikethrough:
			b.WriteString(r.styles.Strikethrough.Render(r.inline(c, src)))
		case *extast.TaskCheckBox:
			if c.IsChecked {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		default:
			b.WriteString(r.inline(c, src))
		}
	}
	return b.String()
}

func rawLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
