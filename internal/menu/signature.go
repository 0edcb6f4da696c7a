package menu

import (
	"sort"
	"strings"
)

// sigEscaper guards the separator characters so two selections that
// differ only in where a separator falls inside a name cannot serialize
// to the same signature.
var sigEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	"=", `\=`,
	"|", `\|`,
	",", `\,`,
)

// canonicalExtras drops blank and duplicate extra names, keeping the
// first occurrence's position. The extras selection is a set: ordering
// and repetition never change the customization.
func canonicalExtras(extras []string) []string {
	out := make([]string, 0, len(extras))
	seen := make(map[string]struct{}, len(extras))
	for _, e := range extras {
		if strings.TrimSpace(e) == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Signature serializes a selection into a canonical string so that two
// customizations produce the same value exactly when they are
// structurally equal. Entries with empty values and duplicate extras
// are dropped; everything else is escaped and sorted.
func (s Selection) Signature() string {
	keys := make([]string, 0, len(s.Variables))
	for k, v := range s.Variables {
		if strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, sigEscaper.Replace(k)+"="+sigEscaper.Replace(s.Variables[k]))
	}

	extras := canonicalExtras(s.Extras)
	escaped := make([]string, 0, len(extras))
	for _, e := range extras {
		escaped = append(escaped, sigEscaper.Replace(e))
	}
	sort.Strings(escaped)

	return strings.Join(parts, ";") + "|" + strings.Join(escaped, ",")
}

// LineKey identifies a cart line: same product plus same customization
// signature always map to the same key.
func LineKey(productID string, sel Selection) string {
	return productID + "::" + sel.Signature()
}
