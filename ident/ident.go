// Package ident normalizes raw wiki text into Go-ready identifiers and
// type expressions: field/variable names, compound/class names, enum
// constant names, pluralization, and type-cell parsing. Downstream code
// generators depend on these being bit-for-bit stable, so every rule
// here is an ordered, deterministic rewrite list rather than a "close
// enough" heuristic.
package ident

import (
	"regexp"
	"strings"
	"unicode"
)

var reservedVarname = map[string]string{
	"type": "typ",
}

var reservedConstname = map[string]string{
	"TYP": "TYPE",
}

// substitution is one literal-text rewrite applied left to right.
type substitution struct {
	from, to string
}

var commonSubs = []substitution{
	{"/", "_"},
	{"–", ""}, // en-dash
	{":", "_"},
}

func applySubs(s string, subs []substitution) string {
	for _, sub := range subs {
		s = strings.ReplaceAll(s, sub.from, sub.to)
	}
	return s
}

// VarName normalizes raw wiki text into a field/variable identifier.
func VarName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return s
	}
	if unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	subs := append([]substitution{
		{"-", "minus"},
		{"+", "plus"},
		{".", "_"},
		{")", ""},
	}, commonSubs...)
	subs = append(subs, substitution{" ", "_"})
	s = applySubs(s, subs)
	s = strings.ReplaceAll(s, "___", "_or_")
	if v, ok := reservedVarname[s]; ok {
		s = v
	}
	return camelCase(s)
}

// ClassName normalizes raw wiki text into a compound/type identifier.
func ClassName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = stripParens(s)
	subs := append([]substitution{
		{"-", ""},
		{"+", ""},
		{".", ""},
	}, commonSubs...)
	subs = append(subs, substitution{" ", "_"})
	s = applySubs(s, subs)
	name := pascalCase(s)
	if name == "Type" {
		return "Type"
	}
	return name
}

// ConstName normalizes raw wiki text into an enum-entry constant name:
// VarName's camelCase split back into SCREAMING_SNAKE_CASE at each
// word boundary.
func ConstName(raw string) string {
	s := VarName(raw)
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	upper := b.String()
	if v, ok := reservedConstname[upper]; ok {
		return v
	}
	return upper
}

// Pluralize applies simple English pluralization: "y"->"ies",
// "h"->"hes", "s" left unchanged, else append "s".
func Pluralize(name string) string {
	if name == "" {
		return name
	}
	last := name[len(name)-1]
	switch {
	case last == 'y':
		return name[:len(name)-1] + "ies"
	case last == 'h':
		return name + "es"
	case last == 's':
		return name
	default:
		return name + "s"
	}
}

var (
	reArrayOfXs    = regexp.MustCompile(`^array_of(.+)s$`)
	reArrayOfX     = regexp.MustCompile(`^array_of(.+)$`)
	reOptionalX    = regexp.MustCompile(`^optional(.+)$`)
	reXArray       = regexp.MustCompile(`^(.+)array$`)
	reWrapped      = regexp.MustCompile(`^(array|optional|option)\[(.+)\]$`)
	reStrayUnderscore = regexp.MustCompile(`^_+|_+$`)
	reStrayComma      = regexp.MustCompile(`,+`)
)

// TypeName normalizes a raw wiki type cell string into one of the
// base types, or an Array[...]/Option[...] compound expression.
func TypeName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_enum", "")
	s = strings.ReplaceAll(s, "enum", "")

	if s == "optional,_varies" || s == "optional, varies" {
		return "Optional[Any]"
	}
	if m := reWrapped.FindStringSubmatch(s); m != nil {
		return pascalCase(m[1]) + "[" + TypeName(m[2]) + "]"
	}
	if m := reArrayOfXs.FindStringSubmatch(s); m != nil {
		return "Array[" + cleanLeaf(m[1]) + "]"
	}
	if m := reArrayOfX.FindStringSubmatch(s); m != nil {
		return "Array[" + cleanLeaf(m[1]) + "]"
	}
	if m := reOptionalX.FindStringSubmatch(s); m != nil {
		return "Option[" + cleanLeaf(m[1]) + "]"
	}
	if m := reXArray.FindStringSubmatch(s); m != nil {
		return "Array[" + cleanLeaf(m[1]) + "]"
	}
	return cleanLeaf(s)
}

func cleanLeaf(leaf string) string {
	leaf = reStrayComma.ReplaceAllString(leaf, "")
	leaf = reStrayUnderscore.ReplaceAllString(leaf, "")
	return pascalCase(leaf)
}

var reStringMaxLen = regexp.MustCompile(`^(.*String.*?)\((\d+)\)(.*)$`)

// ExtractTypeAndLength splits a "String (32767)" style type cell into
// its base type and string max length.
func ExtractTypeAndLength(raw string) (typ string, maxLen *int) {
	if !strings.Contains(raw, "String") || !strings.Contains(raw, "(") {
		return raw, nil
	}
	m := reStringMaxLen.FindStringSubmatch(raw)
	if m == nil {
		return raw, nil
	}
	n := 0
	for _, c := range m[2] {
		n = n*10 + int(c-'0')
	}
	rest := strings.TrimSpace(m[1] + m[3])
	return rest, &n
}

func stripParens(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func camelCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	if strings.HasPrefix(s, "_") {
		b.WriteByte('_')
	}
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
