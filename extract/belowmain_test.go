package extract

import (
	"testing"

	"github.com/oxhq/protoir/diagnostics"
	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/ir"
	"github.com/stretchr/testify/require"
)

func TestResolveBelowMainListEnum(t *testing.T) {
	pkt := &ir.PacketIR{Compound: *ir.NewCompound("Animation")}
	animField := &ir.Field{Name: "animation", Type: "Byte"}
	pkt.AddField(animField)

	tail := []htmltree.Element{
		htmltree.TextRun("Animation can be one of the following values:"),
		&htmltree.List{
			Items: []htmltree.ListItem{
				{Text: "0 - Swing arm"},
				{Text: "1 - Take damage"},
			},
		},
	}

	diag := diagnostics.New()
	resolveBelowMain(pkt, tail, diag.Scoped("Play/Clientbound", "Animation"))

	require.NotNil(t, animField.Enum)
	require.Len(t, animField.Enum.Entries, 2)
	require.Equal(t, "0", animField.Enum.Entries[0].Value)
	require.Equal(t, "SWING_ARM", animField.Enum.Entries[0].Name)
}

func TestResolveBelowMainEnumTable(t *testing.T) {
	pkt := &ir.PacketIR{Compound: *ir.NewCompound("ChangeGameState")}
	reasonField := &ir.Field{Name: "reason", Type: "Byte"}
	pkt.AddField(reasonField)

	body := parseFragment(t, `
<table>
<tr><th>Value</th><th>Meaning</th></tr>
<tr><td>0</td><td>No respawn block available</td></tr>
<tr><td>1</td><td>Begin raining</td></tr>
</table>`)
	table := htmltree.MaterializeTable(firstTable(t, body))

	tail := []htmltree.Element{
		htmltree.TextRun("Reason is one of the following:"),
		table,
	}

	diag := diagnostics.New()
	resolveBelowMain(pkt, tail, diag.Scoped("Play/Clientbound", "Change Game State"))

	require.NotNil(t, reasonField.Enum)
	require.Len(t, reasonField.Enum.Entries, 2)
	require.Equal(t, "1", reasonField.Enum.Entries[1].Value)
}

func TestResolveBelowMainCompoundTable(t *testing.T) {
	pkt := &ir.PacketIR{Compound: *ir.NewCompound("ExplosionPacket")}
	recordsField := &ir.Field{Name: "records", Type: "Array[Record]"}
	pkt.AddField(recordsField)

	body := parseFragment(t, `
<table>
<tr><th>Field Name</th><th>Field Type</th><th>Notes</th></tr>
<tr><td>X</td><td>Byte</td><td></td></tr>
<tr><td>Y</td><td>Byte</td><td></td></tr>
</table>`)
	table := htmltree.MaterializeTable(firstTable(t, body))

	tail := []htmltree.Element{
		htmltree.TextRun("Records structure:"),
		table,
	}

	diag := diagnostics.New()
	resolveBelowMain(pkt, tail, diag.Scoped("Play/Clientbound", "Explosion"))

	require.NotNil(t, recordsField.Compound)
	require.Len(t, recordsField.Compound.Fields(), 2)
}
