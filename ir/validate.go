package ir

import "fmt"

// Validate checks a built Protocol's structural invariants: every
// field has at most one of {Enum, Switch, Compound}, and every
// cross-reference pointer (length pairing, optionality guard) is
// reciprocated on both ends. It does not mutate the IR; it is meant to
// be called from property tests and from the debug CLI as a sanity
// check after a Build.
func Validate(p *Protocol) []error {
	var errs []error
	for _, sp := range p.SubProtocols() {
		if sp == nil {
			continue
		}
		for _, dir := range [][]*PacketIR{sp.Clientbound, sp.Serverbound} {
			for _, pkt := range dir {
				errs = append(errs, validatePacket(sp.Name, pkt)...)
			}
		}
	}
	return errs
}

func validatePacket(subProto string, pkt *PacketIR) []error {
	var errs []error
	for _, f := range pkt.AllFields() {
		if f.violatesExclusivity() {
			errs = append(errs, fmt.Errorf("%s/%s: field %q has more than one of {enum,switch,compound}", subProto, pkt.Name, f.Name))
		}
		if f.LengthGivenBy != nil && f.LengthGivenBy.IsLengthOf != f {
			errs = append(errs, fmt.Errorf("%s/%s: field %q length_given_by is not reciprocated", subProto, pkt.Name, f.Name))
		}
		if f.IsLengthOf != nil && f.IsLengthOf.LengthGivenBy != f {
			errs = append(errs, fmt.Errorf("%s/%s: field %q is_length_of is not reciprocated", subProto, pkt.Name, f.Name))
		}
		if f.OnlyIfBool != nil && f.OnlyIfBool.IsConditionOf != f {
			errs = append(errs, fmt.Errorf("%s/%s: field %q only_if_bool is not reciprocated", subProto, pkt.Name, f.Name))
		}
		if f.IsConditionOf != nil && f.IsConditionOf.OnlyIfBool != f {
			errs = append(errs, fmt.Errorf("%s/%s: field %q is_condition_of is not reciprocated", subProto, pkt.Name, f.Name))
		}
	}
	return errs
}
