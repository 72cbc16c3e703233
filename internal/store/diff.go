package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// unifiedJSONDiff pretty-prints two snapshots' raw IR JSON and renders
// a unified diff between them, the way providers/base/provider.go's
// generateDiff renders before/after transform diffs.
func unifiedJSONDiff(aLabel string, aBody []byte, bLabel string, bBody []byte) (string, error) {
	aPretty, err := prettyJSON(aBody)
	if err != nil {
		return "", fmt.Errorf("store: pretty-print %q: %w", aLabel, err)
	}
	bPretty, err := prettyJSON(bBody)
	if err != nil {
		return "", fmt.Errorf("store: pretty-print %q: %w", bLabel, err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(aPretty),
		B:        difflib.SplitLines(bPretty),
		FromFile: aLabel,
		ToFile:   bLabel,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func prettyJSON(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
