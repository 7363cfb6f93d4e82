package skemadiff

import "sort"

// Normalize rewrites a raw inferred schema into the standards-shaped form: the
// nonstandard per-property boolean `required: true` hints are folded into the
// parent object's required-name list, merged as a set union with any standard
// `required` array already present. A bare boolean `required` never survives
// in the output. Non-map, non-slice values pass through unchanged, and the
// input is never mutated; all rewriting happens on freshly allocated nodes.
//
// Normalize is idempotent.
func Normalize(v any) any {
	out := normalizeValue(v)
	// A boolean that no parent consumed (root-level, or any non-property
	// occurrence) is meaningless and is dropped.
	if m, ok := out.(map[string]any); ok {
		if _, isBool := m["required"].(bool); isBool {
			delete(m, "required")
		}
	}
	return out
}

// normalizeValue normalizes a subtree but leaves an unconsumed bare
// `required: true` on the returned node so that an enclosing properties map
// can fold it; Normalize strips such leftovers everywhere else.
func normalizeValue(v any) any {
	switch node := v.(type) {
	case []any:
		// Arrays of schema fragments are rare but tolerated: map over elements.
		out := make([]any, len(node))
		for i, e := range node {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		return normalizeNode(node)
	default:
		return v
	}
}

func normalizeNode(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	var hinted []string

	for k, v := range node {
		switch k {
		case "required":
			// Reconciled below; never copied through blindly.
		case "properties":
			props, ok := v.(map[string]any)
			if !ok {
				// Malformed fragment: no further structure known.
				out[k] = v
				continue
			}
			normProps := make(map[string]any, len(props))
			for _, name := range sortedKeys(props) {
				child := normalizeValue(props[name])
				if cm, ok := child.(map[string]any); ok {
					if req, ok := cm["required"].(bool); ok {
						if req {
							hinted = append(hinted, name)
						}
						// Children never retain the boolean form.
						delete(cm, "required")
					}
				}
				normProps[name] = child
			}
			out[k] = normProps
		default:
			out[k] = Normalize(v)
		}
	}

	std, hasStd := stringList(node["required"])
	ownBool, isBool := node["required"].(bool)
	switch {
	case len(hinted) > 0 && hasStd:
		out["required"] = unionStrings(std, hinted)
	case len(hinted) > 0:
		out["required"] = unionStrings(nil, hinted)
	case hasStd:
		// Standard array only: kept verbatim.
		out["required"] = node["required"]
	case isBool && ownBool:
		if props, ok := out["properties"].(map[string]any); ok && len(props) > 0 {
			// Nonstandard object-level boolean: every declared property is
			// required. Resolved locally, so no hint reaches the parent.
			out["required"] = sortedKeys(props)
		} else {
			// Per-property hint: preserved for the enclosing properties map
			// to fold and strip; Normalize drops it anywhere else.
			out["required"] = true
		}
	}
	return out
}

// stringList coerces a standard required declaration ([]any of strings or
// []string) into a []string, reporting whether the value had that shape.
func stringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// unionStrings merges the two lists into a deduplicated union, keeping first
// occurrences in order.
func unionStrings(base, more []string) []string {
	seen := make(map[string]struct{}, len(base)+len(more))
	out := make([]string, 0, len(base)+len(more))
	for _, s := range base {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range more {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
