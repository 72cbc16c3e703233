// Package htmltree turns an already-parsed HTML tree (a *html.Node
// from golang.org/x/net/html — parsing the HTML text itself is left to
// that package) into the flat stream of headings/tables/lists/text the
// Section Hierarchizer folds into a tree, and materializes <table>
// elements into a dense cell grid along the way.
//
// Traversal uses github.com/PuerkitoBio/goquery as a thin selection
// layer over *html.Node; it never parses HTML text itself.
package htmltree

import "golang.org/x/net/html"

// CellKind discriminates the three states a grid position can be in:
// Empty, an Anchor, or a Reference pointing back at one.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellAnchor
	CellReference
)

// Cell is one position of a materialized Table's grid.
type Cell struct {
	Kind CellKind

	// Valid when Kind == CellAnchor.
	Content  any // string, or *List if the cell held a single ol/ul child
	IsHeader bool
	Rows     int
	Cols     int
	Deleted  bool // the cell's content was entirely struck through (<s>/<del>)
	Node     *html.Node

	// Valid when Kind == CellReference.
	Target *Cell
}

// Text returns the cell's content as a string, unwrapping a nested
// List into its flattened text form. Empty and Reference cells (call
// Text on their Target instead) return "".
func (c *Cell) Text() string {
	if c == nil || c.Kind != CellAnchor {
		return ""
	}
	switch v := c.Content.(type) {
	case string:
		return v
	case *List:
		return v.Flatten()
	default:
		return ""
	}
}

// Table is a dense rectangular grid of Cells.
type Table struct {
	Rows     [][]*Cell
	RowCount int
	ColCount int
}

// At returns the cell at (row, col), or nil if out of range.
func (t *Table) At(row, col int) *Cell {
	if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColCount {
		return nil
	}
	return t.Rows[row][col]
}

// List is an ordered or unordered sequence of text-or-nested-structure
// elements.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem is one <li>: its own text plus an optional nested List.
type ListItem struct {
	Text   string
	Nested *List
}

// Flatten renders a List back to a single string, "; "-joining items,
// used where prose logic (§4.6's last_text) needs to inspect list
// content as text.
func (l *List) Flatten() string {
	return flattenList(l)
}

func flattenList(l *List) string {
	if l == nil {
		return ""
	}
	out := ""
	for i, it := range l.Items {
		if i > 0 {
			out += "; "
		}
		out += it.Text
		if it.Nested != nil {
			out += " (" + flattenList(it.Nested) + ")"
		}
	}
	return out
}

// Heading is a flattened <h1>..<h6> with its resolved anchor id.
type Heading struct {
	Level    int
	Title    string
	AnchorID string
}

// TextRun is a trimmed, non-empty run of prose between structural
// elements.
type TextRun string

// Element is the union of stream items the Flattener yields: Heading,
// *Table, *List, or TextRun.
type Element any
