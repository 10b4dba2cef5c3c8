package content

import (
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

// renderPDF implements spec.md §4.4 step 4: walk lines in order; the first
// time a line falls inside a detected table's bounding box, emit the
// whole table once as GFM markdown and skip subsequent lines inside that
// box. Other lines render as a heading or plain text based on average
// character height and length.
func renderPDF(lines []model.TextLine, tables []model.Table) string {
	var sb strings.Builder
	emitted := make([]bool, len(tables))
	for _, line := range lines {
		idx := tableContaining(tables, line)
		if idx >= 0 {
			if !emitted[idx] {
				sb.WriteString(renderTableMarkdown(tables[idx]))
				sb.WriteByte('\n')
				emitted[idx] = true
			}
			continue
		}
		sb.WriteString(renderLine(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tableContaining(tables []model.Table, line model.TextLine) int {
	for i, t := range tables {
		if t.Page != line.Page {
			continue
		}
		if line.Y >= t.YMin && line.Y <= t.YMax && line.X >= t.XMin-boundaryAlignTol {
			return i
		}
	}
	return -1
}

func renderLine(line model.TextLine) string {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return ""
	}
	avgHeight := averageLineHeight(line)
	switch {
	case avgHeight > headingH2MinPt && len(text) < headingH2MaxLen:
		return "## " + text
	case avgHeight > headingH3MinPt && len(text) < headingH3MaxLen:
		return "### " + text
	default:
		return text
	}
}
