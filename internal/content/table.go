package content

import (
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

const (
	columnGapFactor  = 2.0 // spec.md §4.4.1: gap multiple of avg char width that starts a column boundary
	boundaryAlignTol = 5.0 // points of tolerance when comparing boundary X positions
	minTableRunLines = 3
)

// columnBoundaries computes, for one reconstructed line, the X positions
// of gaps between consecutive characters exceeding columnGapFactor times
// the line's average char width, per spec.md §4.4.1. Each boundary X is
// the midpoint of its gap.
func columnBoundaries(line model.TextLine) []float64 {
	avgWidth := averageCharWidth(line.Chars)
	if avgWidth <= 0 {
		return nil
	}
	var bounds []float64
	for i := 1; i < len(line.Chars); i++ {
		prev, cur := line.Chars[i-1], line.Chars[i]
		gap := cur.X - (prev.X + prev.Width)
		if gap > columnGapFactor*avgWidth {
			bounds = append(bounds, (prev.X+prev.Width+cur.X)/2)
		}
	}
	return bounds
}

// boundariesAlign reports whether two boundary vectors have equal length
// >= 1 and each corresponding X differs by <= boundaryAlignTol points.
func boundariesAlign(a, b []float64) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for i := range a {
		if absFloat(a[i]-b[i]) > boundaryAlignTol {
			return false
		}
	}
	return true
}

// detectTables implements spec.md §4.4.1: scan lines top-to-bottom per
// page; a run starts at line i and extends to i+1 while the current
// line's boundaries align with the *run's first line's* boundaries
// (documented choice — comparing against the predecessor is also
// acceptable but slightly less robust to gradual column drift; see
// DESIGN.md). Any run of >= 3 aligned lines with non-empty boundaries
// becomes a Table.
func detectTables(lines []model.TextLine) []model.Table {
	var tables []model.Table
	byPage := groupLinesByPage(lines)
	for _, pageLines := range byPage {
		tables = append(tables, detectTablesOnPage(pageLines)...)
	}
	return tables
}

func groupLinesByPage(lines []model.TextLine) [][]model.TextLine {
	var out [][]model.TextLine
	var cur []model.TextLine
	var curPage int
	for _, l := range lines {
		if len(cur) == 0 {
			curPage = l.Page
		} else if l.Page != curPage {
			out = append(out, cur)
			cur = nil
			curPage = l.Page
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func detectTablesOnPage(lines []model.TextLine) []model.Table {
	var tables []model.Table
	i := 0
	for i < len(lines) {
		firstBounds := columnBoundaries(lines[i])
		if len(firstBounds) == 0 {
			i++
			continue
		}
		runEnd := i + 1
		for runEnd < len(lines) {
			bounds := columnBoundaries(lines[runEnd])
			if !boundariesAlign(firstBounds, bounds) {
				break
			}
			runEnd++
		}
		runLen := runEnd - i
		if runLen >= minTableRunLines {
			tables = append(tables, buildTable(lines[i:runEnd], firstBounds))
			i = runEnd
			continue
		}
		i++
	}
	return tables
}

func buildTable(lines []model.TextLine, bounds []float64) model.Table {
	t := model.Table{Page: lines[0].Page}
	t.XMin, t.XMax = lines[0].X, lines[0].X
	t.YMin, t.YMax = lines[0].Y, lines[0].Y
	for _, l := range lines {
		if l.X < t.XMin {
			t.XMin = l.X
		}
		if l.Y < t.YMin {
			t.YMin = l.Y
		}
		if l.Y > t.YMax {
			t.YMax = l.Y
		}
		for _, c := range l.Chars {
			right := c.X + c.Width
			if right > t.XMax {
				t.XMax = right
			}
		}
		t.Rows = append(t.Rows, splitLineAtBoundaries(l, bounds))
	}
	return t
}

// splitLineAtBoundaries splits a line's characters into cells at the
// given boundary X values, trimming each cell per spec.md §4.4.1.
func splitLineAtBoundaries(line model.TextLine, bounds []float64) []string {
	cells := make([]strings.Builder, len(bounds)+1)
	for _, c := range line.Chars {
		col := 0
		for col < len(bounds) && c.X >= bounds[col] {
			col++
		}
		cells[col].WriteRune(c.Ch)
	}
	out := make([]string, len(cells))
	for i, sb := range cells {
		out[i] = strings.TrimSpace(sb.String())
	}
	return out
}

// renderTableMarkdown renders a Table as a GitHub-flavored markdown pipe
// table: first row as header, "---" separators, missing cells as empty
// strings, per spec.md §4.4.1.
func renderTableMarkdown(t model.Table) string {
	if len(t.Rows) == 0 {
		return ""
	}
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteByte('|')
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			sb.WriteByte(' ')
			sb.WriteString(cell)
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
	}
	writeRow(t.Rows[0])
	sb.WriteByte('|')
	for c := 0; c < cols; c++ {
		sb.WriteString(" --- |")
	}
	sb.WriteByte('\n')
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}
	return sb.String()
}
