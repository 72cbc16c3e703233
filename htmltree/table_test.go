package htmltree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + src + "</body></html>"))
	require.NoError(t, err)
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if body != nil {
				return
			}
			walk(c)
		}
	}
	walk(doc)
	return body
}

func firstTable(t *testing.T, body *html.Node) *html.Node {
	t.Helper()
	var table *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if table != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "table" {
			table = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if table != nil {
				return
			}
		}
	}
	walk(body)
	return table
}

// TestTableGeometry checks that every grid position holds a cell, that
// every Reference points at an Anchor, and that every Anchor is
// referenced by exactly rows*cols-1 References.
func TestTableGeometry(t *testing.T) {
	body := parseFragment(t, `
<table>
<tr><th>Field Name</th><th>Field Type</th><th>Notes</th></tr>
<tr><td rowspan="2">Particle</td><td>Array</td><td>nested</td></tr>
<tr><td colspan="2">inner field</td></tr>
</table>`)
	table := MaterializeTable(firstTable(t, body))

	require.Equal(t, 3, table.RowCount)
	require.Equal(t, 3, table.ColCount)

	anchorRefs := map[*Cell]int{}
	for r := 0; r < table.RowCount; r++ {
		for c := 0; c < table.ColCount; c++ {
			cell := table.At(r, c)
			require.NotNil(t, cell)
			switch cell.Kind {
			case CellReference:
				require.NotNil(t, cell.Target)
				anchorRefs[cell.Target]++
			case CellAnchor:
				if _, ok := anchorRefs[cell]; !ok {
					anchorRefs[cell] = 0
				}
			}
		}
	}
	for r := 0; r < table.RowCount; r++ {
		for c := 0; c < table.ColCount; c++ {
			cell := table.At(r, c)
			if cell.Kind == CellAnchor {
				want := cell.Rows*cell.Cols - 1
				require.Equal(t, want, anchorRefs[cell], "anchor %q rows=%d cols=%d", cell.Text(), cell.Rows, cell.Cols)
			}
		}
	}
}

func TestTableHeaderDetection(t *testing.T) {
	body := parseFragment(t, `<table><tr><th>Field Name</th><th>Field Type</th><th>Notes</th></tr><tr><td>0x00</td><td>varint</td><td>id</td></tr></table>`)
	table := MaterializeTable(firstTable(t, body))
	require.True(t, table.At(0, 0).IsHeader)
	require.False(t, table.At(1, 0).IsHeader)
	require.Equal(t, "Field Name", table.At(0, 0).Text())
}

func TestSpanClamping(t *testing.T) {
	body := parseFragment(t, `<table><tr><td rowspan="0" colspan="-1">x</td><td>y</td></tr></table>`)
	table := MaterializeTable(firstTable(t, body))
	require.Equal(t, 1, table.At(0, 0).Rows)
	require.Equal(t, 1, table.At(0, 0).Cols)
}

func TestDeletedCell(t *testing.T) {
	body := parseFragment(t, `<table><tr><td><s>removed field</s></td></tr></table>`)
	table := MaterializeTable(firstTable(t, body))
	require.True(t, table.At(0, 0).Deleted)
}
