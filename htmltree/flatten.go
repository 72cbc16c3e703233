package htmltree

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var headingLevel = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// Flatten walks root's children and yields the linear stream of
// Headings, Tables, Lists and TextRuns: it transparently descends
// through container elements that merely wrap content (one with no
// heading/table descendant of its own passes through unmodified as a
// single TextRun; one that does have one is flattened into its
// parent's stream) but treats <table>/<ol>/<ul>/<h1-6> as leaves.
func Flatten(root *html.Node) []Element {
	sel := goquery.NewDocumentFromNode(root).Selection
	var out []Element
	flattenChildren(sel, &out)
	return out
}

func flattenChildren(sel *goquery.Selection, out *[]Element) {
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			flattenNode(c, out)
		}
	}
}

func flattenNode(n *html.Node, out *[]Element) {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			*out = append(*out, TextRun(text))
		}
		return
	case html.ElementNode:
		// fallthrough below
	default:
		return
	}

	tag := n.Data
	cs := goquery.NewDocumentFromNode(n).Selection

	if level, ok := headingLevel[tag]; ok {
		*out = append(*out, Heading{
			Level:    level,
			Title:    strings.TrimSpace(cs.Text()),
			AnchorID: anchorID(cs),
		})
		return
	}

	switch tag {
	case "table":
		*out = append(*out, MaterializeTable(n))
		return
	case "ol", "ul":
		*out = append(*out, parseList(cs))
		return
	case "script", "style", "noscript":
		return
	}

	if hasHeadingOrTableDescendant(n) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			flattenNode(c, out)
		}
		return
	}

	text := strings.TrimSpace(cs.Text())
	if text != "" {
		*out = append(*out, TextRun(text))
	}
}

// anchorID resolves a heading's anchor: its own id attribute, or the
// id of a descendant span (MediaWiki wraps heading text in
// <span class="mw-headline" id="...">), falling back to a slug of the
// title text.
func anchorID(h *goquery.Selection) string {
	if id, ok := h.Attr("id"); ok && id != "" {
		return id
	}
	if span := h.Find("[id]").First(); span.Length() > 0 {
		if id, ok := span.Attr("id"); ok {
			return id
		}
	}
	return slug(strings.TrimSpace(h.Text()))
}

func slug(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

func hasHeadingOrTableDescendant(n *html.Node) bool {
	found := false
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if found {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				if _, ok := headingLevel[c.Data]; ok {
					found = true
					return
				}
				if c.Data == "table" {
					found = true
					return
				}
				walk(c)
				if found {
					return
				}
			}
		}
	}
	walk(n)
	return found
}
