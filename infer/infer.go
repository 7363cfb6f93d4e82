// Package infer derives a raw structural schema from an example payload.
//
// The output intentionally uses the nonstandard per-property boolean
// `required: true` marker; callers are expected to run it through
// skemadiff.Normalize before indexing or diffing.
package infer

import (
	"encoding/json"
	"math"
	"sort"
)

// Inferrer is the narrow boundary the diff core consumes inference through.
// Any implementation that returns a raw nested schema for an example value
// satisfies it.
type Inferrer interface {
	Infer(v any) (any, error)
}

// Options selects the inference behaviors the diff pipeline depends on.
type Options struct {
	// RequiredHints marks every observed property with the nonstandard
	// boolean `required: true`.
	RequiredHints bool
	// UniformArrays folds all elements of an array into one item shape
	// instead of describing each element positionally.
	UniformArrays bool
}

// New returns the built-in example-based inferrer.
func New(opt Options) Inferrer { return inferrer{opt: opt} }

// Schema infers with the option set the diff pipeline requires: required
// hints on, uniform array elements on. It uses the built-in inferrer, whose
// value walk cannot fail, so no error surface is exposed here.
func Schema(v any) any {
	in := inferrer{opt: Options{RequiredHints: true, UniformArrays: true}}
	return in.value(v)
}

type inferrer struct {
	opt Options
}

func (in inferrer) Infer(v any) (any, error) {
	return in.value(v), nil
}

func (in inferrer) value(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		node := map[string]any{"type": "object"}
		if len(t) == 0 {
			return node
		}
		props := make(map[string]any, len(t))
		for name, val := range t {
			child := in.value(val)
			if in.opt.RequiredHints {
				child["required"] = true
			}
			props[name] = child
		}
		node["properties"] = props
		return node
	case []any:
		node := map[string]any{"type": "array"}
		if len(t) == 0 {
			// Nothing observed: element shape stays unconstrained.
			return node
		}
		if !in.opt.UniformArrays {
			node["items"] = in.value(t[0])
			return node
		}
		items := in.value(t[0])
		for _, e := range t[1:] {
			items = mergeSchemas(items, in.value(e))
		}
		node["items"] = items
		return node
	default:
		return map[string]any{"type": scalarType(v)}
	}
}

func scalarType(v any) string {
	switch t := v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return "integer"
		}
		return "number"
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return "integer"
		}
		return "number"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32:
		if float64(t) == math.Trunc(float64(t)) {
			return "integer"
		}
		return "number"
	default:
		// Same fallback a decoder-unknown value gets everywhere else.
		return "string"
	}
}

// mergeSchemas folds two inferred element schemas into one uniform shape:
// type union, property union, and required-hint intersection (a property
// stays required only when every element declares it required, which
// includes being present in every element).
func mergeSchemas(a, b map[string]any) map[string]any {
	out := map[string]any{}
	if ts := unionTypes(a["type"], b["type"]); ts != nil {
		out["type"] = ts
	}

	aProps, aOK := a["properties"].(map[string]any)
	bProps, bOK := b["properties"].(map[string]any)
	switch {
	case aOK && bOK:
		merged := make(map[string]any, len(aProps)+len(bProps))
		for name, av := range aProps {
			bv, shared := bProps[name]
			am, amOK := av.(map[string]any)
			bm, bmOK := bv.(map[string]any)
			switch {
			case shared && amOK && bmOK:
				child := mergeSchemas(am, bm)
				if hintedRequired(am) && hintedRequired(bm) {
					child["required"] = true
				}
				merged[name] = child
			case shared:
				merged[name] = av
			default:
				merged[name] = dropHint(av)
			}
		}
		for name, bv := range bProps {
			if _, shared := aProps[name]; !shared {
				merged[name] = dropHint(bv)
			}
		}
		out["properties"] = merged
	case aOK:
		out["properties"] = aProps
	case bOK:
		out["properties"] = bProps
	}

	aItems, aOK := a["items"].(map[string]any)
	bItems, bOK := b["items"].(map[string]any)
	switch {
	case aOK && bOK:
		out["items"] = mergeSchemas(aItems, bItems)
	case aOK:
		out["items"] = aItems
	case bOK:
		out["items"] = bItems
	}
	return out
}

func hintedRequired(node map[string]any) bool {
	b, ok := node["required"].(bool)
	return ok && b
}

// dropHint strips the required hint from a schema observed in only part of
// the merged elements.
func dropHint(v any) any {
	node, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(node))
	for k, val := range node {
		if k == "required" {
			if _, isBool := val.(bool); isBool {
				continue
			}
		}
		out[k] = val
	}
	return out
}

func unionTypes(a, b any) any {
	set := map[string]struct{}{}
	add := func(v any) {
		switch t := v.(type) {
		case string:
			set[t] = struct{}{}
		case []string:
			for _, s := range t {
				set[s] = struct{}{}
			}
		case []any:
			for _, e := range t {
				if s, ok := e.(string); ok {
					set[s] = struct{}{}
				}
			}
		}
	}
	add(a)
	add(b)
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for s := range set {
		names = append(names, s)
	}
	if len(names) == 1 {
		return names[0]
	}
	sort.Strings(names)
	return names
}
