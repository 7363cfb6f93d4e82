package skemadiff

import "strings"

// Compatible reports whether a field declared with the next version's types
// still satisfies consumers of the base version's types.
//
// The rule is deliberately asymmetric: an unconstrained base can never be
// broken by a type change (nothing was promised), while a constrained base
// followed by an unconstrained next is a regression (the promise was
// withdrawn). Otherwise the declarations are compatible iff the two type-name
// sets intersect, which tolerates union narrowing and widening as long as at
// least one allowed type survives, and rejects complete type replacement.
func Compatible(base, next []string) bool {
	if len(base) == 0 {
		return true
	}
	if len(next) == 0 {
		return false
	}
	for _, b := range base {
		for _, n := range next {
			if b == n {
				return true
			}
		}
	}
	return false
}

// renderTypes produces the human-readable form used in diff reports.
func renderTypes(types []string) string {
	if len(types) == 0 {
		return "any"
	}
	return strings.Join(types, "|")
}
