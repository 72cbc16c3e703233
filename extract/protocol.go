package extract

import (
	"github.com/oxhq/protoir/diagnostics"
	"github.com/oxhq/protoir/ir"
	"github.com/oxhq/protoir/section"
)

// subProtoSpec names a sub-protocol's anchor id on the protocol page
// and the field of ir.Protocol it fills.
type subProtoSpec struct {
	anchorID string
	name     string
	assign   func(p *ir.Protocol, sp *ir.SubProtocol)
}

var subProtoSpecs = []subProtoSpec{
	{"Handshaking", "Handshake", func(p *ir.Protocol, sp *ir.SubProtocol) { p.Handshake = sp }},
	{"Status", "Status", func(p *ir.Protocol, sp *ir.SubProtocol) { p.Status = sp }},
	{"Login", "Login", func(p *ir.Protocol, sp *ir.SubProtocol) { p.Login = sp }},
	{"Play", "Play", func(p *ir.Protocol, sp *ir.SubProtocol) { p.Play = sp }},
}

// Build locates the four sub-protocol sections by anchor id off the
// folded Section tree, finds their Clientbound/Serverbound subsections
// by title, and runs the Packet Extractor over each direct child
// packet section.
func Build(root *section.Section, gameVersion string, protocolNumber int) (*ir.Protocol, *diagnostics.Log) {
	diag := diagnostics.New()
	proto := &ir.Protocol{GameVersion: gameVersion, ProtocolNumber: protocolNumber}

	for _, spec := range subProtoSpecs {
		sec := root.FindByAnchorID(spec.anchorID)
		if sec == nil {
			diag.Warnf("protocol-assembly", "sub-protocol section %q not found", spec.anchorID)
			continue
		}
		sp := &ir.SubProtocol{Name: spec.name}
		sp.Clientbound = extractDirection(sec, "Clientbound", spec.name, diag)
		sp.Serverbound = extractDirection(sec, "Serverbound", spec.name, diag)
		spec.assign(proto, sp)
	}

	return proto, diag
}

// extractDirection finds the Clientbound/Serverbound subsection by
// title and runs ExtractPacket over each of its direct children: every
// direct child section of a direction section is one packet.
func extractDirection(sec *section.Section, direction, subProtoName string, diag *diagnostics.Log) []*ir.PacketIR {
	dirSec := sec.FindChildByTitle(direction)
	if dirSec == nil {
		diag.Warnf("protocol-assembly", "%s has no %q subsection", subProtoName, direction)
		return nil
	}

	var out []*ir.PacketIR
	for _, pktSec := range dirSec.Children {
		pkt, ok := ExtractPacket(pktSec, subProtoName+"/"+direction, diag)
		if !ok {
			continue
		}
		out = append(out, pkt)
	}
	return out
}
