// Package ir defines the typed intermediate representation the lifter
// produces: Protocol -> SubProtocol -> PacketIR -> Compound ->
// {Field, Switch, Enum}. Ownership is tree-shaped; cross-references
// (length pairing, optionality guards, switch discriminants) are
// non-owning pointers into the same PacketIR and are serialized by
// field name rather than by value.
package ir

// Field is one scalar or nested-compound member of a Compound.
type Field struct {
	Name             string
	Type             string
	Comment          string
	StringMaxLength  *int
	LengthGivenBy    *Field // non-owning: the field that provides this array's length
	IsLengthOf       *Field // reciprocal of LengthGivenBy
	OnlyIf           string // rendered condition expression, e.g. "hasMaybe"
	OnlyIfBool       *Field // non-owning: the boolean guard field, if the guard is a plain bool
	IsConditionOf    *Field // reciprocal of OnlyIfBool
	Enum             *Enum
	Switch           *Switch
	Compound         *Compound
}

// violatesExclusivity reports whether more than one of {Enum, Switch,
// Compound} is populated on the same field, which should never happen:
// a field is a scalar, an enum, a switch, or a nested compound, never
// more than one at once.
func (f *Field) violatesExclusivity() bool {
	n := 0
	if f.Enum != nil {
		n++
	}
	if f.Switch != nil {
		n++
	}
	if f.Compound != nil {
		n++
	}
	return n > 1
}

// EnumEntry is a (value, name, comment) triple inside an Enum.
type EnumEntry struct {
	Value   string
	Name    string
	Comment string
}

// Enum is a closed set of (value, name) pairs attached to a Field.
type Enum struct {
	Name         string
	Discriminant *Field
	Entries      []EnumEntry
}

// SwitchCase is one branch of a Switch: structurally a Compound plus
// the discriminator value that selects it.
type SwitchCase struct {
	Compound
	Value string
}

// Switch is a tagged union discriminated by another Field.
type Switch struct {
	Name         string
	Discriminant *Field
	Cases        []*SwitchCase
	IsOutward    bool // discriminant lies outside the enclosing Compound
}

// Compound is an ordered, named product type of Fields and Switches.
// Entries preserve source order; FieldsByName indexes only the Field
// entries (Switches have no single name to look up by).
type Compound struct {
	Name                 string
	ParentField          *Field // nil for a packet's main compound
	Entries              []any  // each element is *Field or *Switch
	FieldsByName         map[string]*Field
	ContainsOutwardSwitch bool
}

// NewCompound returns an empty, ready-to-populate Compound.
func NewCompound(name string) *Compound {
	return &Compound{Name: name, FieldsByName: make(map[string]*Field)}
}

// AddField appends a Field entry and indexes it by name.
func (c *Compound) AddField(f *Field) {
	c.Entries = append(c.Entries, f)
	c.FieldsByName[f.Name] = f
}

// AddSwitch appends a Switch entry, updating ContainsOutwardSwitch.
func (c *Compound) AddSwitch(s *Switch) {
	c.Entries = append(c.Entries, s)
	if s.IsOutward {
		c.ContainsOutwardSwitch = true
	}
}

// Fields returns every Field entry directly owned by this Compound,
// in source order (Switches are skipped).
func (c *Compound) Fields() []*Field {
	out := make([]*Field, 0, len(c.Entries))
	for _, e := range c.Entries {
		if f, ok := e.(*Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// PacketIR is a packet's main Compound plus its numeric id.
type PacketIR struct {
	Compound
	PacketID int
}

// SubProtocol groups the clientbound/serverbound packets of one of
// Handshake, Status, Login, Play.
type SubProtocol struct {
	Name         string
	Clientbound  []*PacketIR
	Serverbound  []*PacketIR
}

// Protocol is the root of the IR returned by a single Build call.
type Protocol struct {
	GameVersion    string
	ProtocolNumber int
	Handshake      *SubProtocol
	Status         *SubProtocol
	Login          *SubProtocol
	Play           *SubProtocol
}

// SubProtocols returns the four sub-protocols in the fixed order
// Handshake, Status, Login, Play.
func (p *Protocol) SubProtocols() []*SubProtocol {
	return []*SubProtocol{p.Handshake, p.Status, p.Login, p.Play}
}

// AllFields walks every field transitively owned by a PacketIR's
// compound tree (including nested compounds and switch cases), in
// source order. Used by the Below-Main Resolver's relatedness rule
// and by property tests.
func (p *PacketIR) AllFields() []*Field {
	var out []*Field
	var walk func(*Compound)
	walk = func(c *Compound) {
		for _, e := range c.Entries {
			switch v := e.(type) {
			case *Field:
				out = append(out, v)
				if v.Compound != nil {
					walk(v.Compound)
				}
			case *Switch:
				for _, cs := range v.Cases {
					walk(&cs.Compound)
				}
			}
		}
	}
	walk(&p.Compound)
	return out
}
