package formatter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-docgen/pkg/extractor"
)

// ToMarkdown renders the enriched element list as a markdown document: a
// level-1 heading with the frame name, an optional screenshot link, and a
// fixed 5-column table with one row per element in list order. Pure string
// construction, deterministic for a given input.
//
// screenshotFile, when non-empty, is a relative path to an exported frame
// screenshot embedded below the heading.
func ToMarkdown(elements []extractor.UIElement, frameName, screenshotFile string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s Documentation\n\n", frameName))

	if screenshotFile != "" {
		sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", escapeCell(frameName), screenshotFile))
	}

	sb.WriteString("| № | Тип элемента | Название | Описание | Логика работы |\n")
	sb.WriteString("|---|--------------|----------|-----------|---------------|\n")

	for _, e := range elements {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			e.ID, e.Type, escapeCell(e.Name), escapeCell(e.Description), escapeCell(e.Logic)))
	}

	return sb.String()
}

// escapeCell makes arbitrary text safe inside a markdown table cell: pipes are
// escaped and line breaks flattened to spaces so a single element can never
// corrupt the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
