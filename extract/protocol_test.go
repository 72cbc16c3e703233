package extract

import (
	"testing"

	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/section"
	"github.com/stretchr/testify/require"
)

func TestBuildProtocolAssembly(t *testing.T) {
	body := parseFragment(t, `
<table>
<tr><th>Packet ID</th><th>Field Name</th><th>Field Type</th><th>Notes</th></tr>
<tr><td>0x00</td><td>Entity ID</td><td>VarInt</td><td></td></tr>
</table>`)
	table := htmltree.MaterializeTable(firstTable(t, body))

	root := &section.Section{Level: 0}
	handshaking := &section.Section{Level: 2, Title: "Handshaking", AnchorID: "Handshaking"}
	clientbound := &section.Section{Level: 3, Title: "Clientbound"}
	pktSec := &section.Section{Level: 4, Title: "Clientbound Keep Alive", Content: []htmltree.Element{table}}
	clientbound.Children = append(clientbound.Children, pktSec)
	serverbound := &section.Section{Level: 3, Title: "Serverbound"}
	handshaking.Children = append(handshaking.Children, clientbound, serverbound)
	root.Children = append(root.Children, handshaking)

	proto, diag := Build(root, "1.20.1", 765)
	require.Equal(t, "1.20.1", proto.GameVersion)
	require.Equal(t, 765, proto.ProtocolNumber)
	require.NotNil(t, proto.Handshake)
	require.Len(t, proto.Handshake.Clientbound, 1)
	require.Equal(t, "KeepAlive", proto.Handshake.Clientbound[0].Name)
	require.Nil(t, proto.Status)

	var sawStatusWarning bool
	for _, d := range diag.Entries() {
		if d.Stage == "protocol-assembly" {
			sawStatusWarning = true
		}
	}
	require.True(t, sawStatusWarning)
}
