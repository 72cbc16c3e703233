package ir

import "testing"

func TestValidateReciprocalLinks(t *testing.T) {
	length := &Field{Name: "count", Type: "varint"}
	arr := &Field{Name: "items", Type: "array"}
	length.IsLengthOf = arr
	arr.LengthGivenBy = length

	compound := NewCompound("Packet")
	compound.AddField(length)
	compound.AddField(arr)
	pkt := &PacketIR{Compound: *compound, PacketID: 0x01}
	proto := &Protocol{Play: &SubProtocol{Name: "play", Clientbound: []*PacketIR{pkt}}}

	if errs := Validate(proto); len(errs) != 0 {
		t.Fatalf("expected no violations, got %v", errs)
	}
}

func TestValidateDetectsBrokenReciprocal(t *testing.T) {
	length := &Field{Name: "count", Type: "varint"}
	arr := &Field{Name: "items", Type: "array"}
	length.IsLengthOf = arr
	// arr.LengthGivenBy left nil: broken reciprocal link.

	compound := NewCompound("Packet")
	compound.AddField(length)
	compound.AddField(arr)
	pkt := &PacketIR{Compound: *compound, PacketID: 0x01}
	proto := &Protocol{Play: &SubProtocol{Name: "play", Clientbound: []*PacketIR{pkt}}}

	errs := Validate(proto)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one violation, got %v", errs)
	}
}

func TestValidateDetectsExclusivityViolation(t *testing.T) {
	f := &Field{Name: "payload", Type: "varint", Enum: &Enum{Name: "E"}, Compound: NewCompound("C")}
	compound := NewCompound("Packet")
	compound.AddField(f)
	pkt := &PacketIR{Compound: *compound, PacketID: 0x01}
	proto := &Protocol{Status: &SubProtocol{Name: "status", Clientbound: []*PacketIR{pkt}}}

	errs := Validate(proto)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one violation, got %v", errs)
	}
}
