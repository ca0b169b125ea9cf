package report

import (
	"strings"
	"testing"

	"evalreport/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.NewWithColumns(
		table.Column{Key: "category", Label: "Category"},
		table.Column{Key: "n_action", Label: "Actions Evaluated"},
		table.Column{Key: "usefulness", Label: "Avg Usefulness"},
		table.Column{Key: "duplicate", Label: "Duplicate"},
	)
	require.NoError(t, tbl.Append("identity", 4, `\( 3.00 \pm 2.25 \)`, "25.00%"))
	require.NoError(t, tbl.Append("network", 5, `\( 3.80 \pm 1.62 \)`, nil))
	return tbl
}

func TestLaTeXRenderer(t *testing.T) {
	body, err := LaTeXRenderer{}.Render(actionTable(t))
	require.NoError(t, err)

	want := strings.Join([]string{
		`\begin{tabular}{lrrr}`,
		`\toprule`,
		`Category & Actions Evaluated & Avg Usefulness & Duplicate \\`,
		`\midrule`,
		`identity & 4 & \( 3.00 \pm 2.25 \) & 25.00\% \\`,
		`network & 5 & \( 3.80 \pm 1.62 \) &  \\`,
		`\bottomrule`,
		`\end{tabular}`,
	}, "\n") + "\n"
	assert.Equal(t, want, string(body))
}

func TestEscapePercent(t *testing.T) {
	assert.Equal(t, `40.00\%`, EscapePercent("40.00%"))
	assert.Equal(t, `40.00\%`, EscapePercent(`40.00\%`))
	assert.Equal(t, `\%\%`, EscapePercent("%%"))
	assert.Equal(t, "plain", EscapePercent("plain"))
}

func TestMarkdownRenderer(t *testing.T) {
	body, err := MarkdownRenderer{}.Render(actionTable(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Category | Actions Evaluated | Avg Usefulness | Duplicate |", lines[0])
	assert.Equal(t, "|---|---:|---:|---:|", lines[1])
	assert.Equal(t, `| identity | 4 | \( 3.00 \pm 2.25 \) | 25.00% |`, lines[2])
}

func TestCSVRenderer(t *testing.T) {
	tbl := table.NewWithColumns(table.Column{Key: "scenario", Label: "Scenario"}, table.Column{Key: "notes", Label: "Notes"})
	require.NoError(t, tbl.Append("F1C1", `said "hi", left`))
	require.NoError(t, tbl.Append("F1C2", 2.5))

	body, err := CSVRenderer{}.Render(tbl)
	require.NoError(t, err)

	assert.Equal(t, "Scenario,Notes\nF1C1,\"said \"\"hi\"\", left\"\nF1C2,2.5\n", string(body))
}

func TestHTMLRenderer(t *testing.T) {
	body, err := HTMLRenderer{}.Render(actionTable(t))
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>Category</th>")
	assert.Contains(t, html, "<td>identity</td>")
}

func TestRenderersFor(t *testing.T) {
	rs, err := RenderersFor([]string{"LaTeX", " csv", "latex", ""})
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "tex", rs[0].Extension())
	assert.Equal(t, "csv", rs[1].Name())

	_, err = RenderersFor([]string{"docx"})
	assert.ErrorContains(t, err, "docx")

	_, err = RenderersFor(nil)
	assert.Error(t, err)

	assert.Equal(t, []string{"csv", "html", "latex", "markdown"}, Formats())
}
