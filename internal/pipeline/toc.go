package pipeline

import (
	"html"
	"strconv"
	"strings"
)

// TOC depth bounds.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// TOCEntry is one table-of-contents link.
type TOCEntry struct {
	Text  string
	Level int
	ID    string
}

// BuildTOC returns entries for headings whose level lies in
// [minDepth, maxDepth], preserving document order.
func BuildTOC(headings []Heading, minDepth, maxDepth int) []TOCEntry {
	var entries []TOCEntry
	for _, h := range headings {
		if h.Level < minDepth || h.Level > maxDepth {
			continue
		}
		entries = append(entries, TOCEntry{Text: h.Text, Level: h.Level, ID: h.ID})
	}
	return entries
}

// RenderTOC renders entries as concatenated anchors. Entries deeper than
// minDepth are indented by 1rem per extra level.
func RenderTOC(entries []TOCEntry, minDepth int) string {
	if len(entries) == 0 {
		return ""
	}

	var buf strings.Builder
	for _, e := range entries {
		buf.WriteString(`<a href="#`)
		buf.WriteString(html.EscapeString(e.ID))
		buf.WriteString(`"`)
		if indent := e.Level - minDepth; indent > 0 {
			buf.WriteString(` style="margin-left: `)
			buf.WriteString(strconv.Itoa(indent))
			buf.WriteString(`rem;"`)
		}
		buf.WriteString(`>`)
		buf.WriteString(html.EscapeString(e.Text))
		buf.WriteString(`</a>`)
	}
	return buf.String()
}
