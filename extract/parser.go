package extract

import (
	"github.com/oxhq/protoir/diagnostics"
	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/ir"
)

// parser is the Compound Parser's shared, per-packet state: the main
// table it reads from and a flat name->Field index spanning the whole
// packet (used to resolve switch-header references and length-pairing
// rename checks). Column cursors are NOT stored here; they are
// threaded through parseCompound's parameters so recursion restores
// them automatically on return.
type parser struct {
	table  *htmltree.Table
	pkt    *ir.PacketIR
	fields map[string]*ir.Field
	diag   *diagnostics.Scope
}

func newParser(table *htmltree.Table, pkt *ir.PacketIR, diag *diagnostics.Scope) *parser {
	return &parser{table: table, pkt: pkt, fields: make(map[string]*ir.Field), diag: diag}
}

// register indexes a newly created field by name for later lookup
// (switch-header resolution, optionality-condition field resolution,
// length-pairing renames).
func (p *parser) register(f *ir.Field) {
	p.fields[f.Name] = f
}

// rename updates a field's name everywhere it is indexed: the packet
// flat index and the owning compound's FieldsByName map. Used when
// length pairing renames a generically-named length candidate (e.g.
// "length") to something array-specific so it doesn't collide with
// another field of the same name.
func (p *parser) rename(owner *ir.Compound, f *ir.Field, newName string) {
	delete(p.fields, f.Name)
	delete(owner.FieldsByName, f.Name)
	f.Name = newName
	p.fields[newName] = f
	owner.FieldsByName[newName] = f
}
