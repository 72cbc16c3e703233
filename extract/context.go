// Package extract turns a folded section tree into the typed IR: it
// locates each packet's main table and numeric id, parses the main
// table's rows into fields/switches/enums, resolves whatever secondary
// tables, lists and prose follow it, and assembles the four
// sub-protocols into a Protocol. It is the hard part of the lifter:
// every packet is a small ad-hoc grammar read out of a dense HTML
// table plus whatever secondary tables, lists, and prose follow it.
package extract

import "strings"

// LocalContext holds the column cursors and row count the Compound
// Parser needs for one packet's main table. NamesCol/TypesCol shift
// during recursion into nested compounds and switch cases; callers
// pass modified copies into recursive calls rather than mutating a
// shared LocalContext, so restoration on return is automatic.
type LocalContext struct {
	NamesCol int
	TypesCol int
	NotesCol int // -1 if the table has no notes column
	RowCount int
}

var headerLabels = []string{"field name", "field type", "notes"}

// findHeaderColumns searches row 0 of a table for the labels
// "field name", "field type", "notes" (case-insensitive), returning
// ok=false if name or type is missing — callers reject the table in
// that case rather than guess at a layout.
func findHeaderColumns(cols int, cellAt func(col int) string) (ctx LocalContext, ok bool) {
	ctx.NotesCol = -1
	foundName, foundType := false, false
	for c := 0; c < cols; c++ {
		text := strings.ToLower(strings.TrimSpace(cellAt(c)))
		switch text {
		case "field name":
			ctx.NamesCol = c
			foundName = true
		case "field type":
			ctx.TypesCol = c
			foundType = true
		case "notes":
			ctx.NotesCol = c
		}
	}
	return ctx, foundName && foundType
}
