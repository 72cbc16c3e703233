package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/oxhq/protoir/ident"
	"github.com/oxhq/protoir/ir"
)

// Comment dialects recognized by resolveOptionality. Each has an
// "anchor" phrase introducing the referenced field X and, for the
// non-boolean dialects, a comparison against a value V.
var (
	reOnlyIfEquals = regexp.MustCompile(`(?i)(?:present|only|sent)\s+(?:if|when)\s+(.+?)\s+(?:is|equals?)\s+(.+)$`)
	reOnlyIfSet    = regexp.MustCompile(`(?i)(?:present|only|sent)\s+(?:if|when)\s+(.+)$`)
	reNotEquals    = regexp.MustCompile(`(?i)(.+?)\s+(?:is not|!=|does not equal)\s+(.+)$`)
	reMoreThan     = regexp.MustCompile(`(?i)(.+?)\s+(?:is more than|>|is greater than)\s+(.+)$`)
	reLessThan     = regexp.MustCompile(`(?i)(.+?)\s+(?:is less than|<)\s+(.+)$`)
	reIsOrW        = regexp.MustCompile(`(?i)^(.+?)\s+is\s+(.+?)\s+or\s+(.+)$`)
	reIndicatesIt  = regexp.MustCompile(`(?i)indicates it`)
)

// resolveOptionality handles an Option[...] field's guard condition:
// it either pairs with the reciprocal Boolean guard field immediately
// preceding it in the same compound (OnlyIfBool), or has its condition
// parsed out of its own comment text into a rendered expression
// (OnlyIf).
func (p *parser) resolveOptionality(field *ir.Field, guard *ir.Field) {
	if guard != nil && guard.Type == "Boolean" {
		field.OnlyIfBool = guard
		guard.IsConditionOf = field
		field.OnlyIf = guard.Name
		return
	}

	comment := field.Comment
	if comment == "" {
		return
	}

	if m := reOnlyIfEquals.FindStringSubmatch(comment); m != nil {
		field.OnlyIf = p.renderCondition(m[1], "==", m[2])
		return
	}
	if m := reIsOrW.FindStringSubmatch(comment); m != nil {
		// "X is V or W" -> X == V || X == W
		left := p.renderCondition(m[1], "==", m[2])
		right := p.renderCondition(m[1], "==", m[3])
		field.OnlyIf = left + " || " + right
		return
	}
	if m := reNotEquals.FindStringSubmatch(comment); m != nil {
		field.OnlyIf = p.renderCondition(m[1], "!=", m[2])
		return
	}
	if m := reMoreThan.FindStringSubmatch(comment); m != nil {
		field.OnlyIf = p.renderCondition(m[1], ">", m[2])
		return
	}
	if m := reLessThan.FindStringSubmatch(comment); m != nil {
		field.OnlyIf = p.renderCondition(m[1], "<", m[2])
		return
	}
	if reIndicatesIt.MatchString(comment) {
		// bitflag guard: "bit 0x02 in <flags> indicates it" dialect.
		if m := reOnlyIfSet.FindStringSubmatch(comment); m != nil {
			field.OnlyIf = p.renderCondition(m[1], "", "")
			return
		}
	}
	if m := reOnlyIfSet.FindStringSubmatch(comment); m != nil {
		field.OnlyIf = p.renderCondition(m[1], "", "")
	}
}

// renderCondition resolves X against the packet's field dictionary and
// renders "X op V" (or bare "X" when op is empty), resolving V as an
// int, bool, string literal, or enum constant.
func (p *parser) renderCondition(xRaw, op, vRaw string) string {
	xRaw = strings.TrimSpace(xRaw)
	x, ok := p.fields[ident.VarName(xRaw)]
	xName := ident.VarName(xRaw)
	if ok {
		xName = x.Name
	}
	if op == "" {
		return xName
	}

	vRaw = strings.TrimSpace(strings.Trim(vRaw, ".\"'"))
	v := renderValue(x, vRaw)
	return xName + " " + op + " " + v
}

func renderValue(field *ir.Field, raw string) string {
	if _, err := strconv.Atoi(raw); err == nil {
		return raw
	}
	lower := strings.ToLower(raw)
	if lower == "true" || lower == "false" {
		return lower
	}
	if field != nil && field.Enum != nil {
		for _, e := range field.Enum.Entries {
			if strings.EqualFold(e.Comment, raw) || strings.EqualFold(e.Name, raw) {
				return field.Enum.Name + "." + e.Name
			}
		}
	}
	return strconv.Quote(raw)
}
