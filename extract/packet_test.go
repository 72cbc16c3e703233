package extract

import (
	"strings"
	"testing"

	"github.com/oxhq/protoir/diagnostics"
	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/ir"
	"github.com/oxhq/protoir/section"
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

// TestExtractPacketScalarFields covers a minimal, flat packet: id row
// plus a handful of scalar fields, no switches/arrays/optionals.
func TestExtractPacketScalarFields(t *testing.T) {
	body := parseFragment(t, `
<table>
<tr><th>Packet ID</th><th>Field Name</th><th>Field Type</th><th>Notes</th></tr>
<tr><td rowspan="2">0x00</td><td>Entity ID</td><td>VarInt</td><td></td></tr>
<tr><td>Flags</td><td>Byte</td><td></td></tr>
</table>`)
	table := htmltree.MaterializeTable(firstTable(t, body))

	sec := &section.Section{Title: "Clientbound Keep Alive", Content: []htmltree.Element{table}}
	diag := diagnostics.New()

	pkt, ok := ExtractPacket(sec, "Play/Clientbound", diag)
	require.True(t, ok)
	require.Equal(t, 0, pkt.PacketID)
	require.Equal(t, "KeepAlive", pkt.Name)

	fields := pkt.Fields()
	require.Len(t, fields, 2)
	require.Equal(t, "entityId", fields[0].Name)
	require.Equal(t, "Varint", fields[0].Type)
	require.Equal(t, "flags", fields[1].Name)
	require.Equal(t, "Byte", fields[1].Type)
}

// TestExtractPacketArrayLengthPairing covers length pairing: a VarInt
// count field immediately followed by an Array field wires
// LengthGivenBy/IsLengthOf.
func TestExtractPacketArrayLengthPairing(t *testing.T) {
	body := parseFragment(t, `
<table>
<tr><th>Packet ID</th><th>Field Name</th><th>Field Type</th><th>Notes</th></tr>
<tr><td rowspan="3">0x01</td><td>Count</td><td>VarInt</td><td>Number of elements</td></tr>
<tr><td>Elements</td><td>Array of VarInt</td><td></td></tr>
<tr><td>Trailer</td><td>Byte</td><td></td></tr>
</table>`)
	table := htmltree.MaterializeTable(firstTable(t, body))
	sec := &section.Section{Title: "Some Packet", Content: []htmltree.Element{table}}
	diag := diagnostics.New()

	pkt, ok := ExtractPacket(sec, "Play/Clientbound", diag)
	require.True(t, ok)

	fields := pkt.Fields()
	require.Len(t, fields, 3)
	count, elements := fields[0], fields[1]
	require.NotNil(t, count.IsLengthOf)
	require.Equal(t, elements, count.IsLengthOf)
	require.NotNil(t, elements.LengthGivenBy)
	require.Equal(t, count, elements.LengthGivenBy)
}

// TestExtractPacketOptionalBoolGuard covers the reciprocal Boolean
// guard dialect: a Boolean field immediately followed by an Optional
// field pairs via OnlyIfBool/IsConditionOf.
func TestExtractPacketOptionalBoolGuard(t *testing.T) {
	body := parseFragment(t, `
<table>
<tr><th>Packet ID</th><th>Field Name</th><th>Field Type</th><th>Notes</th></tr>
<tr><td rowspan="2">0x02</td><td>Has Reason</td><td>Boolean</td><td></td></tr>
<tr><td>Reason</td><td>Optional Chat</td><td></td></tr>
</table>`)
	table := htmltree.MaterializeTable(firstTable(t, body))
	sec := &section.Section{Title: "Disconnect", Content: []htmltree.Element{table}}
	diag := diagnostics.New()

	pkt, ok := ExtractPacket(sec, "Play/Clientbound", diag)
	require.True(t, ok)

	fields := pkt.Fields()
	require.Len(t, fields, 2)
	hasReason, reason := fields[0], fields[1]
	require.Equal(t, reason, hasReason.IsConditionOf)
	require.Equal(t, hasReason, reason.OnlyIfBool)
	require.Equal(t, "hasReason", reason.OnlyIf)
}

// TestExtractPacketSwitch covers switch-case handling: a header-cell
// row establishes the discriminant field, and subsequent "value: title"
// rows become cases.
func TestExtractPacketSwitch(t *testing.T) {
	body := parseFragment(t, `
<table>
<tr><th>Packet ID</th><th>Field Name</th><th>Field Type</th><th>Notes</th></tr>
<tr><td rowspan="4">0x03</td><td>Action</td><td>VarInt</td><td></td></tr>
<tr><th colspan="3">Action</th></tr>
<tr><td>0: Add Player</td><td>Name</td><td>String</td></tr>
<tr><td>1: Remove Player</td><td>UUID</td><td>UUID</td></tr>
</table>`)
	table := htmltree.MaterializeTable(firstTable(t, body))
	sec := &section.Section{Title: "Player Info", Content: []htmltree.Element{table}}
	diag := diagnostics.New()

	pkt, ok := ExtractPacket(sec, "Play/Clientbound", diag)
	require.True(t, ok)

	require.Len(t, pkt.Entries, 2)
	action, ok := pkt.Entries[0].(*ir.Field)
	require.True(t, ok)
	require.Equal(t, "action", action.Name)

	sw, ok := pkt.Entries[1].(*ir.Switch)
	require.True(t, ok)
	require.Equal(t, action, sw.Discriminant)
	require.Len(t, sw.Cases, 2)
	require.Equal(t, "0", sw.Cases[0].Value)
	require.Equal(t, "AddPlayer", sw.Cases[0].Name)
	require.Len(t, sw.Cases[0].Fields(), 1)
	require.Equal(t, "name", sw.Cases[0].Fields()[0].Name)
	require.Equal(t, "String", sw.Cases[0].Fields()[0].Type)
}

// TestExtractPacketNoMainTable covers the no-main-table case: a
// section with no table at all yields ok=false plus a warning.
func TestExtractPacketNoMainTable(t *testing.T) {
	sec := &section.Section{Title: "Empty Section", Content: nil}
	diag := diagnostics.New()
	_, ok := ExtractPacket(sec, "Play/Clientbound", diag)
	require.False(t, ok)
	require.NotEmpty(t, diag.Entries())
}
