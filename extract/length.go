package extract

import (
	"strings"

	"github.com/oxhq/protoir/ir"
)

var ambiguousLengthNames = map[string]bool{
	"length": true,
	"count":  true,
	"size":   true,
}

// applyLengthPairing resolves the short-window length-candidate state
// an array (or nested-compound-as-array) field looks back at: the most
// recent still-live numeric scalar pairs with it only when it's fresh
// (ttl == 2, meaning the array immediately follows the candidate's
// row) or, one row later (ttl == 1), when the array's own name is
// still a substring of the candidate's — the wiki's usual way of
// naming a length field "fooLength" right before an array named "foo".
// A candidate with a generically ambiguous name ("length"/"count"/
// "size") is renamed to "<arrayName>Length" on pairing so it doesn't
// collide with another field sharing that name.
func (p *parser) applyLengthPairing(arrayField *ir.Field, owner *ir.Compound, candidate **ir.Field, ttl *int) {
	c := *candidate
	if c == nil {
		return
	}

	paired := *ttl == 2 || (*ttl == 1 && strings.Contains(c.Name, arrayField.Name))
	if !paired {
		return
	}

	if ambiguousLengthNames[strings.ToLower(c.Name)] {
		p.rename(owner, c, arrayField.Name+"Length")
	}

	c.IsLengthOf = arrayField
	arrayField.LengthGivenBy = c
	*candidate = nil
	*ttl = 0
}
