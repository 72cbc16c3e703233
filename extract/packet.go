package extract

import (
	"strconv"
	"strings"

	"github.com/oxhq/protoir/diagnostics"
	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/ident"
	"github.com/oxhq/protoir/ir"
	"github.com/oxhq/protoir/section"
)

// ExtractPacket locates a packet section's main table, its header
// columns, and its numeric id, then runs the Compound Parser over the
// main table and the Below-Main Resolver over everything after it.
// Returns ok=false if no usable main table was found, in which case
// the packet is skipped and a warning recorded rather than aborting
// the whole protocol build.
func ExtractPacket(sec *section.Section, subProto string, diag *diagnostics.Log) (pkt *ir.PacketIR, ok bool) {
	scope := diag.Scoped(subProto, sec.Title)

	table, tail := splitMainTable(sec.Content)
	if table == nil {
		scope.Warnf("packet-extractor", "no main table found in section %q", sec.Title)
		return nil, false
	}

	ctx, found := findHeaderColumns(table.ColCount, func(col int) string {
		cell := table.At(0, col)
		if cell == nil || cell.Kind != htmltree.CellAnchor {
			return ""
		}
		return cell.Text()
	})
	if !found {
		scope.Warnf("packet-extractor", "main table in section %q has no field name/field type header", sec.Title)
		return nil, false
	}
	ctx.RowCount = table.RowCount

	idCell := table.At(1, 0)
	if idCell == nil {
		scope.Errorf("packet-extractor", "malformed packet id in section %q: no row 1", sec.Title)
		return nil, false
	}
	packetID, err := parsePacketID(idCell.Text())
	if err != nil {
		scope.Errorf("packet-extractor", "malformed packet id in section %q: %v", sec.Title, err)
		return nil, false
	}

	name := ident.ClassName(stripDirectionPrefix(sec.Title))
	pkt = &ir.PacketIR{Compound: *ir.NewCompound(name), PacketID: packetID}

	p := newParser(table, pkt, scope)
	p.parseCompound(ctx.NamesCol, ctx.TypesCol, ctx.NotesCol, 1, ctx.RowCount-1, &pkt.Compound)

	resolveBelowMain(pkt, tail, scope)

	return pkt, true
}

// splitMainTable returns the first Table in a section's flattened
// content as the main table and everything after it as the tail: a
// packet's fields live in the first table in its section, and
// anything following — prose, secondary tables, lists — is the
// below-main material the Below-Main Resolver walks separately.
func splitMainTable(content []htmltree.Element) (*htmltree.Table, []htmltree.Element) {
	for i, el := range content {
		if t, ok := el.(*htmltree.Table); ok {
			return t, content[i+1:]
		}
	}
	return nil, nil
}

// parsePacketID parses row 1 column 0 of the main table with base
// auto-detection: a "0x"-prefixed cell is hex, everything else decimal.
func parsePacketID(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		return int(n), err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return int(n), err
}

var directionPrefixes = []string{
	"clientbound ", "serverbound ", "packet ",
}

// stripDirectionPrefix drops a leading direction/"Packet" boilerplate
// word from a section title before normalizing it into a class name,
// so "Clientbound Login Success" and "Login Success" both yield
// LoginSuccess.
func stripDirectionPrefix(title string) string {
	lower := strings.ToLower(title)
	for _, p := range directionPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(title[len(p):])
		}
	}
	return title
}
