package skemadiff

// Field is one index entry: the descriptor for a single structural address.
// Types holds the declared type name(s); nil means the position is
// unconstrained. Required reflects the requiredness the position inherits
// from its parent context.
type Field struct {
	Address  string   `json:"address"`
	Types    []string `json:"types,omitempty"`
	Required bool     `json:"required"`
}

// FieldIndex maps a structural address to its descriptor. Addresses are
// unique by construction.
type FieldIndex map[string]Field

// Index flattens a normalized schema into a FieldIndex via pre-order
// traversal. Every node gets a descriptor, containers included, so a type
// change on a whole sub-object or array is as detectable as one on a leaf.
// The root is always considered present (required). Under-specified
// fragments (a non-map properties value, a missing items schema) terminate
// that branch instead of failing.
//
// Descent is keyed on the presence of a properties map or an items schema,
// deliberately not on the declared type: fragments that omit `type` (or
// declare it inconsistently) still have every reachable property indexed,
// keeping the index address-complete over properties/items chains.
func Index(schema any) FieldIndex {
	idx := make(FieldIndex)
	indexNode(schema, RootAddress, true, idx)
	return idx
}

func indexNode(v any, addr string, required bool, idx FieldIndex) {
	node, ok := v.(map[string]any)
	if !ok {
		// Scalar or otherwise unshaped fragment: unconstrained descriptor.
		idx[addr] = Field{Address: addr, Required: required}
		return
	}
	idx[addr] = Field{Address: addr, Types: typeList(node["type"]), Required: required}

	if props, ok := node["properties"].(map[string]any); ok {
		req, _ := stringList(node["required"])
		requiredNames := make(map[string]struct{}, len(req))
		for _, name := range req {
			requiredNames[name] = struct{}{}
		}
		for name, child := range props {
			_, childRequired := requiredNames[name]
			indexNode(child, childAddress(addr, name), childRequired, idx)
		}
	}

	if items, ok := node["items"]; ok {
		// An array's requiredness is about the array being present, not about
		// individual elements, so the same flag propagates to the item shape.
		indexNode(items, itemsAddress(addr), required, idx)
	}
}

// typeList coerces a type declaration (absent, a single name, or a union
// list) into the set form used by the compatibility rule.
func typeList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
