package extract

import (
	"regexp"
	"strings"

	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/ident"
	"github.com/oxhq/protoir/ir"
)

var switchCaseRE = regexp.MustCompile(`^\d+\s*:.+`)

var noFieldPrefix = regexp.MustCompile(`(?i)^no field`)

// parseCompound is the Compound Parser's state machine. It iterates
// rows [start, start+span) of p.table, reading (name, type, notes) at
// (namesCol, typesCol, notesCol), classifying each row and dispatching
// to the matching handler.
func (p *parser) parseCompound(namesCol, typesCol, notesCol, start, span int, target *ir.Compound) {
	var (
		openSwitch       *ir.Switch
		switchField      *ir.Field
		switchOutward    bool
		lengthCandidate  *ir.Field
		lengthTTL        int
		guard            *ir.Field
	)

	end := start + span
	for i := start; i < end; i++ {
		// The length-pairing window ages one tick per row, unconditionally,
		// before any skip/classification logic below runs.
		if lengthTTL > 0 {
			lengthTTL--
			if lengthTTL == 0 {
				lengthCandidate = nil
			}
		}

		nameCell := p.table.At(i, namesCol)
		typeCell := p.table.At(i, typesCol)
		var notesCell *htmltree.Cell
		if notesCol >= 0 {
			notesCell = p.table.At(i, notesCol)
		}

		if nameCell == nil || nameCell.Kind != htmltree.CellAnchor {
			continue
		}
		if nameCell.Deleted {
			continue
		}
		nameText := strings.TrimSpace(nameCell.Text())
		if nameText == "" {
			continue
		}
		isSwitchCase := switchCaseRE.MatchString(nameText)

		if !isSwitchCase {
			typeText := ""
			if typeCell != nil {
				typeText = typeCell.Text()
			}
			if noFieldPrefix.MatchString(strings.TrimSpace(nameText)) || noFieldPrefix.MatchString(strings.TrimSpace(typeText)) {
				continue
			}
		}

		switch {
		case isSwitchCase:
			p.handleSwitchCase(nameText, nameCell, i, namesCol, typesCol, notesCol, &openSwitch, &switchField, &switchOutward, target)
			continue
		case nameCell.IsHeader:
			p.handleHeaderCell(nameText, target, &switchField, &switchOutward)
			continue
		}

		if openSwitch != nil {
			target.AddSwitch(openSwitch)
			openSwitch = nil
			switchField = nil
		}

		if nameCell.Rows > 1 {
			p.handleNestedCompound(nameText, typeCell, i, namesCol, typesCol, notesCol, nameCell.Rows, target, &lengthCandidate, &lengthTTL, &guard)
		} else {
			p.handleScalarField(nameText, typeCell, notesCell, target, &lengthCandidate, &lengthTTL, &guard)
		}
	}

	if openSwitch != nil {
		target.AddSwitch(openSwitch)
	}
}

func (p *parser) handleSwitchCase(nameText string, nameCell *htmltree.Cell, row, namesCol, typesCol, notesCol int, openSwitch **ir.Switch, switchField **ir.Field, switchOutward *bool, target *ir.Compound) {
	parts := strings.SplitN(nameText, ":", 2)
	value := strings.TrimSpace(parts[0])
	caseTitle := ""
	if len(parts) > 1 {
		caseTitle = strings.TrimSpace(parts[1])
	}

	if *openSwitch == nil {
		if *switchField == nil {
			p.diag.Warnf("compound-parser", "switch case %q has no prior discriminant field", nameText)
		}
		name := "switch"
		if *switchField != nil {
			name = (*switchField).Name
		}
		*openSwitch = &ir.Switch{Name: name, Discriminant: *switchField, IsOutward: *switchOutward}
	}

	sc := &ir.SwitchCase{Compound: *ir.NewCompound(ident.ClassName(caseTitle)), Value: value}
	(*openSwitch).Cases = append((*openSwitch).Cases, sc)

	// A case row's own "Name"/"Type"/"Notes" columns sit one position
	// to the right of the enclosing table's, since the case's value
	// label ("0: Add Player") occupies the outer Field Name column.
	shift := typesCol - namesCol
	nestedNotesCol := -1
	if notesCol >= 0 {
		nestedNotesCol = notesCol + shift
	}
	p.parseCompound(namesCol+shift, typesCol+shift, nestedNotesCol, row, nameCell.Rows, &sc.Compound)
}

func (p *parser) handleHeaderCell(nameText string, target *ir.Compound, switchField **ir.Field, switchOutward *bool) {
	key := ident.VarName(nameText)
	f, ok := p.fields[key]
	if !ok {
		p.diag.Warnf("compound-parser", "switch header %q does not reference a known field", nameText)
		*switchField = nil
		return
	}
	*switchField = f
	*switchOutward = target.FieldsByName[f.Name] != f
}

func (p *parser) handleNestedCompound(nameText string, typeCell *htmltree.Cell, row, namesCol, typesCol, notesCol, rows int, target *ir.Compound, lengthCandidate **ir.Field, lengthTTL *int, guard **ir.Field) {
	typeText := ""
	if typeCell != nil {
		typeText = typeCell.Text()
	}
	if !strings.Contains(strings.ToLower(typeText), "array") {
		p.diag.Warnf("compound-parser", "nested compound %q has type %q, expected Array; treating as compound anyway", nameText, typeText)
	}

	compoundName := ident.ClassName(nameText)
	nested := ir.NewCompound(compoundName)
	field := &ir.Field{
		Name: ident.Pluralize(ident.VarName(nameText)),
		Type: "Array[" + compoundName + "]",
	}
	nested.ParentField = field
	field.Compound = nested
	target.AddField(field)
	p.register(field)

	p.parseCompound(namesCol+1, typesCol+1, notesCol, row, rows, nested)

	p.applyLengthPairing(field, target, lengthCandidate, lengthTTL)
	*guard = field
}

func (p *parser) handleScalarField(nameText string, typeCell, notesCell *htmltree.Cell, target *ir.Compound, lengthCandidate **ir.Field, lengthTTL *int, guard **ir.Field) {
	typeRaw := ""
	if typeCell != nil {
		typeRaw = typeCell.Text()
	}
	extracted, maxLen := ident.ExtractTypeAndLength(typeRaw)
	typ := ident.TypeName(canonicalTypeTokens(extracted))

	comment := ""
	if notesCell != nil {
		comment = strings.TrimSpace(notesCell.Text())
	}

	field := &ir.Field{
		Name:            ident.VarName(nameText),
		Type:            typ,
		Comment:         comment,
		StringMaxLength: maxLen,
	}
	target.AddField(field)
	p.register(field)

	if isArrayType(field.Type) {
		p.applyLengthPairing(field, target, lengthCandidate, lengthTTL)
	} else if canGiveLength(field.Type) {
		*lengthCandidate = field
		*lengthTTL = 3
	}

	if isOptionalType(field.Type) {
		p.resolveOptionality(field, *guard)
	} else {
		*guard = field
	}

	if comment != "" {
		if enum := p.harvestInlineEnum(field, comment); enum != nil {
			field.Enum = enum
		}
	}
}

// canonicalTypeTokens joins a type cell's whitespace-separated words
// with underscores, matching the underscore-joined canonical form
// ident.TypeName's rules operate on — wiki prose writes "Array of X",
// the grammar it encodes is "array_of_x".
func canonicalTypeTokens(raw string) string {
	return strings.Join(strings.Fields(raw), "_")
}

func isOptionalType(t string) bool {
	return strings.HasPrefix(t, "Option")
}

func isArrayType(t string) bool {
	return strings.HasPrefix(t, "Array") || strings.HasPrefix(t, "Option[Array")
}

func canGiveLength(t string) bool {
	base := t
	if strings.HasPrefix(base, "Option[") && strings.HasSuffix(base, "]") {
		base = base[len("Option[") : len(base)-1]
	}
	switch base {
	case "Varint", "Int", "Short", "Byte":
		return true
	}
	return false
}
