package content

import (
	"testing"

	"github.com/MikkoParkkola/nab/model"
	"github.com/stretchr/testify/require"
)

// makeLine builds a TextLine from (char, x) pairs sharing page/y/height,
// for table-detection tests that only care about column gaps.
func makeLine(page int, y float64, cells []string, colX []float64, width float64) model.TextLine {
	var chars []model.PdfChar
	for i, cell := range cells {
		x := colX[i]
		for _, r := range cell {
			chars = append(chars, model.PdfChar{Ch: r, X: x, Y: y, Width: width, Height: 10, Page: page})
			x += width
		}
	}
	line := buildLine(chars)
	line.Page = page
	line.Y = y
	return line
}

func TestDetectTablesFindsAlignedRun(t *testing.T) {
	lines := []model.TextLine{
		makeLine(1, 100, []string{"Name", "Score"}, []float64{0, 50}, 5),
		makeLine(1, 90, []string{"Alice", "10"}, []float64{0, 50}, 5),
		makeLine(1, 80, []string{"Bob", "20"}, []float64{0, 50}, 5),
	}
	tables := detectTables(lines)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 3)
	require.Equal(t, "Name", tables[0].Rows[0][0])
	require.Equal(t, "Alice", tables[0].Rows[1][0])
}

func TestDetectTablesIgnoresShortRuns(t *testing.T) {
	lines := []model.TextLine{
		makeLine(1, 100, []string{"Name", "Score"}, []float64{0, 50}, 5),
		makeLine(1, 90, []string{"Alice", "10"}, []float64{0, 50}, 5),
	}
	tables := detectTables(lines)
	require.Empty(t, tables)
}

func TestRenderTableMarkdownProducesPipeTable(t *testing.T) {
	tbl := model.Table{Rows: [][]string{{"Name", "Score"}, {"Alice", "10"}}}
	out := renderTableMarkdown(tbl)
	require.Contains(t, out, "| Name | Score |")
	require.Contains(t, out, "| --- | --- |")
	require.Contains(t, out, "| Alice | 10 |")
}

func TestBoundariesAlign(t *testing.T) {
	require.True(t, boundariesAlign([]float64{10, 20}, []float64{12, 22}))
	require.False(t, boundariesAlign([]float64{10, 20}, []float64{10}))
	require.False(t, boundariesAlign(nil, nil))
	require.False(t, boundariesAlign([]float64{10}, []float64{30}))
}

func TestRenderLineHeadingThresholds(t *testing.T) {
	h2 := model.TextLine{Text: "Big Heading", Chars: []model.PdfChar{{Height: 18}, {Height: 18}}}
	require.Equal(t, "## Big Heading", renderLine(h2))

	h3 := model.TextLine{Text: "Medium Heading", Chars: []model.PdfChar{{Height: 14}, {Height: 14}}}
	require.Equal(t, "### Medium Heading", renderLine(h3))

	plain := model.TextLine{Text: "Body text", Chars: []model.PdfChar{{Height: 10}, {Height: 10}}}
	require.Equal(t, "Body text", renderLine(plain))
}
