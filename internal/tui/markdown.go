package tui

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	fencedCodeRe  = regexp.MustCompile(`(?s)<pre><code(?: class="language-([a-zA-Z0-9+-]+)")?>(.*?)</code></pre>`)
	inlineCodeRe  = regexp.MustCompile(`<code>([^<]+)</code>`)
	headingRe     = regexp.MustCompile(`(?s)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	boldRe        = regexp.MustCompile(`(?s)<strong>(.*?)</strong>`)
	italicRe      = regexp.MustCompile(`(?s)<em>(.*?)</em>`)
	listItemRe    = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	anyTagRe      = regexp.MustCompile(`<[^>]+>`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// MarkdownRenderer turns assistant replies into styled terminal text, with
// chroma highlighting for fenced code blocks.
type MarkdownRenderer struct {
	md        goldmark.Markdown
	formatter chroma.Formatter
	style     *chroma.Style
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
		formatter: formatters.Get("terminal256"),
		style:     styles.Get("dracula"),
	}
}

// Render converts markdown to terminal output constrained to width. On any
// conversion failure the raw text comes back unstyled.
func (r *MarkdownRenderer) Render(content string, width int) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	if width < 20 {
		width = 20
	}
	return r.fromHTML(buf.String(), width)
}

func (r *MarkdownRenderer) fromHTML(doc string, width int) string {
	var codeBlocks []string
	out := fencedCodeRe.ReplaceAllStringFunc(doc, func(block string) string {
		parts := fencedCodeRe.FindStringSubmatch(block)
		styled := codeBlockStyle.Width(width - 2).Render(
			r.highlight(html.UnescapeString(parts[2]), parts[1]))
		codeBlocks = append(codeBlocks, styled)
		return fmt.Sprintf("\n\x00code:%d\x00\n", len(codeBlocks)-1)
	})

	out = inlineCodeRe.ReplaceAllStringFunc(out, func(span string) string {
		parts := inlineCodeRe.FindStringSubmatch(span)
		return inlineCodeStyle.Render(html.UnescapeString(parts[1]))
	})
	out = headingRe.ReplaceAllStringFunc(out, func(h string) string {
		parts := headingRe.FindStringSubmatch(h)
		return headingStyle.Render(anyTagRe.ReplaceAllString(parts[1], "")) + "\n"
	})
	out = boldRe.ReplaceAllString(out, "\x1b[1m$1\x1b[22m")
	out = italicRe.ReplaceAllString(out, "\x1b[3m$1\x1b[23m")
	out = listItemRe.ReplaceAllStringFunc(out, func(li string) string {
		parts := listItemRe.FindStringSubmatch(li)
		return "  • " + anyTagRe.ReplaceAllString(parts[1], "") + "\n"
	})

	out = strings.ReplaceAll(out, "</p>", "\n")
	out = strings.ReplaceAll(out, "<br>", "\n")
	out = anyTagRe.ReplaceAllString(out, "")
	out = html.UnescapeString(out)

	for i, block := range codeBlocks {
		out = strings.ReplaceAll(out, fmt.Sprintf("\x00code:%d\x00", i), block)
	}

	out = blankRunRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func (r *MarkdownRenderer) highlight(code, lang string) string {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

var (
	codeBlockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(colorBgCard)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	inlineCodeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(colorBgCard)).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))
)
