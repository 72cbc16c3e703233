package htmltree

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MaterializeTable converts a <table> node into a dense rectangular
// grid, placing one Anchor cell per source <th>/<td> and filling any
// rowspan/colspan-covered region with Reference cells that point back
// to it.
func MaterializeTable(tableNode *html.Node) *Table {
	sel := goquery.NewDocumentFromNode(tableNode).Selection
	rows := bodyRows(sel)
	if len(rows) == 0 {
		return &Table{}
	}

	colCount := firstRowColCount(rows[0])
	t := &Table{ColCount: colCount}

	// occupied[row] tracks which columns of that (not-yet-materialized)
	// row are already claimed by a rowspan from an earlier row.
	occupied := make([]map[int]*Cell, len(rows))
	for i := range occupied {
		occupied[i] = make(map[int]*Cell)
	}

	for r, rowSel := range rows {
		gridRow := make([]*Cell, colCount)
		for c := 0; c < colCount; c++ {
			if anchor, ok := occupied[r][c]; ok {
				gridRow[c] = &Cell{Kind: CellReference, Target: anchor}
			}
		}

		col := 0
		rowSel.ChildrenFiltered("th,td").Each(func(_ int, cellSel *goquery.Selection) {
			for col < colCount && gridRow[col] != nil {
				col++
			}
			if col >= colCount {
				return
			}
			node := cellSel.Nodes[0]
			rowspan := clampSpan(attrInt(cellSel, "rowspan", 1))
			colspan := clampSpan(attrInt(cellSel, "colspan", 1))
			isHeader := goquery.NodeName(cellSel) == "th"

			anchor := &Cell{
				Kind:     CellAnchor,
				Content:  cellContent(cellSel),
				IsHeader: isHeader,
				Rows:     rowspan,
				Cols:     colspan,
				Deleted:  isDeleted(cellSel),
				Node:     node,
			}
			gridRow[col] = anchor

			for dr := 0; dr < rowspan; dr++ {
				for dc := 0; dc < colspan; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					targetRow := r + dr
					targetCol := col + dc
					if targetCol >= colCount {
						continue
					}
					ref := &Cell{Kind: CellReference, Target: anchor}
					if targetRow == r {
						if targetCol < len(gridRow) {
							gridRow[targetCol] = ref
						}
					} else if targetRow < len(occupied) {
						occupied[targetRow][targetCol] = anchor
					}
				}
			}
			col += colspan
		})

		for c := 0; c < colCount; c++ {
			if gridRow[c] == nil {
				gridRow[c] = &Cell{Kind: CellEmpty}
			}
		}
		t.Rows = append(t.Rows, gridRow)
	}
	t.RowCount = len(t.Rows)
	return t
}

func bodyRows(table *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// Skip rows nested inside a deeper table (already handled when
		// that nested table is itself materialized).
		if closestTable(tr) == tableFirstNode(table) {
			rows = append(rows, tr)
		}
	})
	return rows
}

func tableFirstNode(s *goquery.Selection) *html.Node {
	if len(s.Nodes) == 0 {
		return nil
	}
	return s.Nodes[0]
}

func closestTable(tr *goquery.Selection) *html.Node {
	n := tr.Nodes[0].Parent
	for n != nil {
		if n.Type == html.ElementNode && n.Data == "table" {
			return n
		}
		n = n.Parent
	}
	return nil
}

func firstRowColCount(row *goquery.Selection) int {
	count := 0
	row.ChildrenFiltered("th,td").Each(func(_ int, cellSel *goquery.Selection) {
		count += clampSpan(attrInt(cellSel, "colspan", 1))
	})
	return count
}

func attrInt(s *goquery.Selection, name string, def int) int {
	v, ok := s.Attr(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// clampSpan treats a rowspan/colspan of 0 or less as 1: some wikis emit
// "rowspan=0" to mean "no span" rather than its HTML5 meaning.
func clampSpan(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// cellContent trims a cell's text, unwrapping a single nested ol/ul
// child into a *List rather than flattening it to text.
func cellContent(cellSel *goquery.Selection) any {
	children := cellSel.Children()
	if children.Length() == 1 {
		tag := goquery.NodeName(children)
		if tag == "ol" || tag == "ul" {
			return parseList(children)
		}
	}
	return strings.TrimSpace(cellSel.Text())
}

func isDeleted(cellSel *goquery.Selection) bool {
	text := strings.TrimSpace(cellSel.Text())
	if text == "" {
		return false
	}
	struck := cellSel.Find("s,del,strike").Text()
	return strings.TrimSpace(struck) == text
}

func parseList(sel *goquery.Selection) *List {
	l := &List{Ordered: goquery.NodeName(sel) == "ol"}
	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		item := ListItem{}
		nested := li.ChildrenFiltered("ol,ul")
		// Item text excludes any nested list's own text.
		clone := li.Clone()
		clone.ChildrenFiltered("ol,ul").Remove()
		item.Text = strings.TrimSpace(clone.Text())
		if nested.Length() > 0 {
			item.Nested = parseList(nested.First())
		}
		l.Items = append(l.Items, item)
	})
	return l
}
