package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/oxhq/protoir/diagnostics"
	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/ident"
	"github.com/oxhq/protoir/ir"
)

var proseStripPrefixes = regexp.MustCompile(`(?i)^\s*(structure|values|format)\s*:\s*`)

// listMarkerRE matches one "Value - Name" / "Value: Name" / "Value =
// Name" bullet in a below-main enumeration list.
var listMarkerRE = regexp.MustCompile(`(?i)^\s*(0x[0-9a-f]+|\d+)\s*(?:=|:|-)\s*(.+)$`)

// resolveBelowMain walks everything in a packet section after the main
// table, tracking the nearest preceding prose (lastText) and attaching
// secondary tables/lists to the field they describe, found by textual
// proximity rather than position.
func resolveBelowMain(pkt *ir.PacketIR, tail []htmltree.Element, scope *diagnostics.Scope) {
	lastText := ""
	for _, el := range tail {
		switch v := el.(type) {
		case htmltree.TextRun:
			lastText = proseStripPrefixes.ReplaceAllString(strings.TrimSpace(string(v)), "")
		case *htmltree.List:
			attachListEnum(pkt, v, lastText, scope)
		case *htmltree.Table:
			attachSecondaryTable(pkt, v, lastText, scope)
		case htmltree.Heading:
			lastText = ""
		}
	}
}

type relatedKind int

const (
	relatedCompound relatedKind = iota
	relatedEnum
)

// compatibleFields returns every field still eligible to own a new
// compound or enum, ordered by decreasing name length so the most
// specific candidate is tried first. A field that already owns a
// compound can't own a second one; a field owning an enum, or one
// whose type makes it an unlikely enum discriminant (Boolean, Array,
// Float, Double, Long), or whose own comment already talks about a
// number/offset/length/count, is excluded from enum candidacy.
func compatibleFields(pkt *ir.PacketIR, kind relatedKind) []*ir.Field {
	var out []*ir.Field
	for _, f := range pkt.AllFields() {
		if f.Name == "" {
			continue
		}
		switch kind {
		case relatedCompound:
			if f.Compound != nil {
				continue
			}
		case relatedEnum:
			if f.Enum != nil || baseTypeIn(f.Type, "Boolean", "Array", "Float", "Double", "Long") {
				continue
			}
			lc := strings.ToLower(f.Comment)
			if strings.Contains(lc, "number") || strings.Contains(lc, "offset") || strings.Contains(lc, "length") || strings.Contains(lc, "count") {
				continue
			}
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Name) > len(out[j].Name) })
	return out
}

func baseTypeIn(t string, names ...string) bool {
	for _, n := range names {
		if t == n || strings.HasPrefix(t, n+"[") {
			return true
		}
	}
	return false
}

func firstMatch(fields []*ir.Field, pred func(*ir.Field) bool) *ir.Field {
	for _, f := range fields {
		if pred(f) {
			return f
		}
	}
	return nil
}

// findRelatedField resolves the field a secondary structure (list or
// table) belongs to. It tries each compatible field, most
// specific (longest name) first, through a staged match: (i) the
// field's name is a whole word in the preceding prose or in the
// structure's own header row, (ii) the prose is itself a substring of
// the field's name, (iii) the prose with spaces removed is a substring
// of the field's type, and — enum attachment only — (iv) a fallback
// heuristic that favors a "type"/"id"-named field when the structure's
// headers themselves mention type or id.
func findRelatedField(pkt *ir.PacketIR, prose string, headers []string, kind relatedKind) *ir.Field {
	candidates := compatibleFields(pkt, kind)
	if len(candidates) == 0 {
		return nil
	}

	lowerProse := strings.ToLower(prose)
	if f := firstMatch(candidates, func(f *ir.Field) bool {
		name := strings.ToLower(f.Name)
		if wordBoundaryContains(lowerProse, name) {
			return true
		}
		for _, h := range headers {
			if wordBoundaryContains(strings.ToLower(h), name) {
				return true
			}
		}
		return false
	}); f != nil {
		return f
	}

	if lowerProse != "" {
		if f := firstMatch(candidates, func(f *ir.Field) bool {
			return strings.Contains(strings.ToLower(f.Name), lowerProse)
		}); f != nil {
			return f
		}
	}

	if proseNoSpace := strings.ReplaceAll(lowerProse, " ", ""); proseNoSpace != "" {
		if f := firstMatch(candidates, func(f *ir.Field) bool {
			return strings.Contains(strings.ToLower(f.Type), proseNoSpace)
		}); f != nil {
			return f
		}
	}

	if kind == relatedEnum {
		hasTypeOrID := false
		for _, h := range headers {
			if strings.Contains(h, "type") || strings.Contains(h, "id") {
				hasTypeOrID = true
				break
			}
		}
		if hasTypeOrID {
			if f := firstMatch(candidates, func(f *ir.Field) bool {
				ln := strings.ToLower(f.Name)
				return strings.Contains(ln, "type") || strings.Contains(ln, "id")
			}); f != nil {
				return f
			}
		}
	}

	return nil
}

func wordBoundaryContains(haystack, needle string) bool {
	idx := strings.Index(haystack, needle)
	for idx >= 0 {
		before := idx == 0 || !isIdentChar(haystack[idx-1])
		after := idx+len(needle) >= len(haystack) || !isIdentChar(haystack[idx+len(needle)])
		if before && after {
			return true
		}
		next := strings.Index(haystack[idx+1:], needle)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// attachListEnum attaches a bulleted/numbered "Value - Name" list as
// the Enum of the field named in the preceding prose.
func attachListEnum(pkt *ir.PacketIR, list *htmltree.List, prose string, scope *diagnostics.Scope) {
	field := findRelatedField(pkt, prose, nil, relatedEnum)
	if field == nil || field.Enum != nil {
		return
	}

	var entries []ir.EnumEntry
	for _, it := range list.Items {
		m := listMarkerRE.FindStringSubmatch(it.Text)
		if m == nil {
			return // not a uniform marker list; bail rather than guess
		}
		entries = append(entries, normalizeEnumEntry(m[1], m[2]))
	}
	if len(entries) < 2 {
		return
	}
	field.Enum = &ir.Enum{Name: ident.ClassName(field.Name) + "Enum", Discriminant: field, Entries: entries}
}

// attachSecondaryTable classifies a below-main table by its header row
// and attaches it to the related field: a compound-shaped table
// becomes a nested Compound, a 5-column attribute table becomes an
// Enum of its keys, and anything else is treated as a plain values
// table and becomes an Enum too.
func attachSecondaryTable(pkt *ir.PacketIR, table *htmltree.Table, prose string, scope *diagnostics.Scope) {
	if table.RowCount == 0 {
		return
	}
	headers := make([]string, table.ColCount)
	for c := 0; c < table.ColCount; c++ {
		cell := table.At(0, c)
		if cell != nil {
			headers[c] = strings.ToLower(strings.TrimSpace(cell.Text()))
		}
	}

	shape := classifySecondaryTable(headers)
	kind := relatedEnum
	if shape == shapeCompound {
		kind = relatedCompound
	}

	field := findRelatedField(pkt, prose, headers, kind)
	if field == nil {
		scope.Errorf("below-main-resolver", "secondary table with no related field (prose: %q)", prose)
		return
	}

	switch shape {
	case shapeCompound:
		ctx, ok := findHeaderColumns(table.ColCount, func(col int) string { return headers[col] })
		if !ok {
			return
		}
		nested := ir.NewCompound(ident.ClassName(field.Name))
		nested.ParentField = field
		p := newParser(table, pkt, scope)
		p.parseCompound(ctx.NamesCol, ctx.TypesCol, ctx.NotesCol, 1, table.RowCount-1, nested)
		field.Compound = nested
	case shapeAttribute:
		attachAttributeEnum(field, table)
	default:
		attachValuesEnum(field, table, headers)
	}
}

// attachAttributeEnum turns a 5-column attribute table (key, default,
// min, max, label) into an Enum whose entries carry the full
// default/min/max range alongside the attribute's label.
func attachAttributeEnum(field *ir.Field, table *htmltree.Table) {
	if field.Enum != nil {
		return
	}
	const keyCol, defaultCol, minCol, maxCol, labelCol = 0, 1, 2, 3, 4

	cellText := func(row, col int) string {
		if c := table.At(row, col); c != nil {
			return strings.TrimSpace(c.Text())
		}
		return ""
	}

	enum := &ir.Enum{Name: ident.ClassName(field.Name) + "Enum", Discriminant: field}
	for r := 1; r < table.RowCount; r++ {
		kc := table.At(r, keyCol)
		if kc == nil || kc.Deleted {
			continue
		}
		key := strings.TrimSpace(kc.Text())
		if key == "" {
			continue
		}
		label := cellText(r, labelCol)
		rest := "default " + cellText(r, defaultCol)
		if mn, mx := cellText(r, minCol), cellText(r, maxCol); mn != "" || mx != "" {
			rest += ", min " + mn + ", max " + mx
		}
		comment := rest
		if label != "" {
			comment = label + "; " + rest
		}
		enum.Entries = append(enum.Entries, ir.EnumEntry{Value: key, Name: ident.ConstName(key), Comment: comment})
	}
	if len(enum.Entries) > 0 {
		field.Enum = enum
	}
}

// attachValuesEnum turns a generic values table into an Enum by first
// locating its value/name/comment columns (detectEnumColumns), then
// reading one entry per row.
func attachValuesEnum(field *ir.Field, table *htmltree.Table, headers []string) {
	if field.Enum != nil {
		return
	}
	valuesCol, namesCol, commentsCol, inline, reject := detectEnumColumns(table, headers, field.Name)
	if reject {
		return
	}

	enum := &ir.Enum{Name: ident.ClassName(field.Name) + "Enum", Discriminant: field}
	for r := 1; r < table.RowCount; r++ {
		if inline {
			vc := table.At(r, valuesCol)
			if vc == nil || vc.Deleted {
				continue
			}
			text := strings.TrimSpace(vc.Text())
			idx := strings.Index(text, ":")
			if idx < 0 {
				continue
			}
			enum.Entries = append(enum.Entries, normalizeEnumEntry(text[:idx], text[idx+1:]))
			continue
		}

		vc, nc := table.At(r, valuesCol), table.At(r, namesCol)
		if vc == nil || nc == nil || vc.Deleted || nc.Deleted {
			continue
		}
		name := strings.TrimSpace(nc.Text())
		if name == "" {
			continue
		}
		entry := normalizeEnumEntry(vc.Text(), name)
		if commentsCol >= 0 {
			if cc := table.At(r, commentsCol); cc != nil {
				if extra := strings.TrimSpace(cc.Text()); extra != "" {
					entry.Comment = extra
				}
			}
		}
		enum.Entries = append(enum.Entries, entry)
	}
	if len(enum.Entries) > 0 {
		field.Enum = enum
	}
}

// detectEnumColumns locates a values table's value, name and optional
// comment columns. A single-column table shares col 0 for everything;
// otherwise the first column whose first data row starts with a digit
// is the values column (and, if that cell itself contains "value:name"
// text, the table is an inline single-column form). The names column
// defaults to the one right after the values column, overridden by a
// header that names the related field or contains "name"; the
// comments column defaults to the one after that, overridden by a
// "notes" header. A names column whose first data cell also starts
// with a digit means the heuristic mis-detected the layout, and the
// whole table is rejected rather than guessed at.
func detectEnumColumns(table *htmltree.Table, headers []string, fieldName string) (valuesCol, namesCol, commentsCol int, inline, reject bool) {
	commentsCol = -1
	if table.ColCount == 1 {
		return 0, 0, -1, false, false
	}

	valuesCol = -1
	for c := 0; c < table.ColCount; c++ {
		cell := table.At(1, c)
		if cell == nil {
			continue
		}
		text := strings.TrimSpace(cell.Text())
		if text == "" || !unicode.IsDigit(rune(text[0])) {
			continue
		}
		valuesCol = c
		if strings.Contains(text, ":") {
			inline = true
		}
		break
	}
	if valuesCol < 0 {
		valuesCol = 0
	}
	if inline {
		return valuesCol, valuesCol, -1, true, false
	}

	namesCol = valuesCol + 1
	lowerField := strings.ToLower(fieldName)
	for c, h := range headers {
		if c == valuesCol {
			continue
		}
		if h == lowerField || strings.Contains(h, "name") {
			namesCol = c
			break
		}
	}
	if namesCol >= table.ColCount {
		namesCol = valuesCol
	}

	commentsCol = namesCol + 1
	for c, h := range headers {
		if h == "notes" {
			commentsCol = c
			break
		}
	}
	if commentsCol >= table.ColCount {
		commentsCol = -1
	}

	if nameCell := table.At(1, namesCol); nameCell != nil {
		text := strings.TrimSpace(nameCell.Text())
		if text != "" && unicode.IsDigit(rune(text[0])) {
			return valuesCol, namesCol, commentsCol, false, true
		}
	}

	return valuesCol, namesCol, commentsCol, false, false
}

type secondaryShape int

const (
	shapeCompound secondaryShape = iota
	shapeAttribute
	shapeEnum
)

// classifySecondaryTable decides what a below-main table represents: a
// "Field Name"/"Field Type" header row means a nested compound, a bare
// 5-column layout means an attribute table, and every other shape
// defaults to a values (enum) table — there is no "unrecognized"
// fallback, since every below-main table that isn't one of the first
// two shapes is, in practice, a values table with idiosyncratic
// headers.
func classifySecondaryTable(headers []string) secondaryShape {
	if _, ok := findHeaderColumns(len(headers), func(col int) string { return headers[col] }); ok {
		return shapeCompound
	}
	if len(headers) == 5 {
		return shapeAttribute
	}
	return shapeEnum
}
