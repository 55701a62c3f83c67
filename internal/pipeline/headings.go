package pipeline

import (
	"strconv"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var headingSelector = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")

// Heading is a heading found in rendered content, with its final id.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// AssignHeadingIDs gives every heading under root an id unique within this
// pass, in document order. The base id is Slugify(text), or "section-<i>"
// when that is empty, where i is the heading's 0-based position. Collisions
// get -2, -3, ... appended. Existing ids are overwritten.
func AssignHeadingIDs(root *html.Node) []Heading {
	nodes := headingSelector.MatchAll(root)
	if len(nodes) == 0 {
		return nil
	}

	used := make(map[string]bool, len(nodes))
	headings := make([]Heading, 0, len(nodes))
	for i, n := range nodes {
		text := textContent(n)
		id := uniqueID(baseID(text, i), used)
		used[id] = true
		setAttr(n, "id", id)

		headings = append(headings, Heading{
			Level: headingLevel(n),
			ID:    id,
			Text:  text,
		})
	}
	return headings
}

func baseID(text string, index int) string {
	if slug := Slugify(text); slug != "" {
		return slug
	}
	return "section-" + strconv.Itoa(index)
}

func uniqueID(base string, used map[string]bool) string {
	id := base
	for counter := 2; used[id]; counter++ {
		id = base + "-" + strconv.Itoa(counter)
	}
	return id
}

// headingLevel maps h1..h6 to 1..6.
func headingLevel(n *html.Node) int {
	if len(n.Data) == 2 && n.Data[0] == 'h' {
		return int(n.Data[1] - '0')
	}
	return 0
}
