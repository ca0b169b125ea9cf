// Package report renders composed tables to files: LaTeX tables for the
// paper, plus Markdown, CSV and HTML for reading them elsewhere.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"evalreport/domain/table"
	"evalreport/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Format names accepted in configuration
const (
	FormatLaTeX    = "latex"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatHTML     = "html"
)

var renderers = map[string]func() ports.TableRendererPort{
	FormatLaTeX:    func() ports.TableRendererPort { return LaTeXRenderer{} },
	FormatMarkdown: func() ports.TableRendererPort { return MarkdownRenderer{} },
	FormatCSV:      func() ports.TableRendererPort { return CSVRenderer{} },
	FormatHTML:     func() ports.TableRendererPort { return HTMLRenderer{} },
}

// Formats lists every supported format name
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderersFor resolves format names, ignoring case and repeats
func RenderersFor(names []string) ([]ports.TableRendererPort, error) {
	seen := make(map[string]bool, len(names))
	out := make([]ports.TableRendererPort, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		mk, ok := renderers[name]
		if !ok {
			return nil, fmt.Errorf("unknown report format %q (supported: %s)", name, strings.Join(Formats(), ", "))
		}
		seen[name] = true
		out = append(out, mk())
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no report format selected")
	}
	return out, nil
}

// cellText prints a cell the way it appears in every format: numbers with no
// trailing zeros, null as empty
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// LaTeXRenderer writes a booktabs tabular with the first column left-aligned
// and the rest right-aligned. Cells are written verbatim apart from percent
// signs, so math such as \( 3.70 \pm 0.68 \) survives.
type LaTeXRenderer struct{}

func (LaTeXRenderer) Name() string      { return FormatLaTeX }
func (LaTeXRenderer) Extension() string { return "tex" }

func (LaTeXRenderer) Render(t *table.Table) ([]byte, error) {
	var sb strings.Builder
	colFormat := ""
	if t.Width() > 0 {
		colFormat = "l" + strings.Repeat("r", t.Width()-1)
	}

	sb.WriteString(fmt.Sprintf("\\begin{tabular}{%s}\n", colFormat))
	sb.WriteString("\\toprule\n")
	sb.WriteString(latexRow(t.Labels()))
	sb.WriteString("\\midrule\n")
	for r := 0; r < t.Len(); r++ {
		row := t.Row(r)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellText(v)
		}
		sb.WriteString(latexRow(cells))
	}
	sb.WriteString("\\bottomrule\n")
	sb.WriteString("\\end{tabular}\n")
	return []byte(sb.String()), nil
}

func latexRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = EscapePercent(c)
	}
	return strings.Join(escaped, " & ") + " \\\\\n"
}

// EscapePercent escapes % for LaTeX, leaving already escaped signs alone
func EscapePercent(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i == 0 || s[i-1] != '\\') {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// MarkdownRenderer writes a pipe table aligned like the LaTeX output
type MarkdownRenderer struct{}

func (MarkdownRenderer) Name() string      { return FormatMarkdown }
func (MarkdownRenderer) Extension() string { return "md" }

func (MarkdownRenderer) Render(t *table.Table) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(markdownRow(t.Labels()))
	seps := make([]string, t.Width())
	for i := range seps {
		if i == 0 {
			seps[i] = "---"
		} else {
			seps[i] = "---:"
		}
	}
	sb.WriteString("|" + strings.Join(seps, "|") + "|\n")

	for r := 0; r < t.Len(); r++ {
		row := t.Row(r)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellText(v)
		}
		sb.WriteString(markdownRow(cells))
	}
	return []byte(sb.String()), nil
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |\n"
}

// CSVRenderer writes the display labels as the header row
type CSVRenderer struct{}

func (CSVRenderer) Name() string      { return FormatCSV }
func (CSVRenderer) Extension() string { return "csv" }

func (CSVRenderer) Render(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Labels()); err != nil {
		return nil, err
	}
	for r := 0; r < t.Len(); r++ {
		row := t.Row(r)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellText(v)
		}
		if err := w.Write(cells); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTMLRenderer converts the Markdown rendering to an HTML fragment
type HTMLRenderer struct{}

func (HTMLRenderer) Name() string      { return FormatHTML }
func (HTMLRenderer) Extension() string { return "html" }

func (HTMLRenderer) Render(t *table.Table) ([]byte, error) {
	md, err := MarkdownRenderer{}.Render(t)
	if err != nil {
		return nil, err
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, r), nil
}
