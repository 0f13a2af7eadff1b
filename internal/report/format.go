// Package report formats a converged constprop.Result into the
// deterministic text dump spec.md §4.G/§6 defines, grounded on the
// teacher's internal/ir/printer.go (sorted, deterministic rendering of IR
// structures).
package report

import (
	"sort"
	"strings"

	"control/internal/constprop"
)

// Format renders result as: for each block in lexicographic order, a line
// "<block>:", then one "<var> -> <value>" line per non-Bottom binding in
// lexicographic order by variable name, then a blank line.
func Format(result *constprop.Result) string {
	var b strings.Builder

	ids := make([]string, 0, len(result.Post))
	for id := range result.Post {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		b.WriteString(id)
		b.WriteString(":\n")
		store := result.Post[id]
		for _, name := range store.Names() {
			b.WriteString(name)
			b.WriteString(" -> ")
			b.WriteString(store.Get(name).String())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
