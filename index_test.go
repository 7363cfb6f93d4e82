package skemadiff_test

import (
	"reflect"
	"testing"

	skemadiff "github.com/reoring/skemadiff"
)

func TestIndex_AddressComplete(t *testing.T) {
	schema := mustJSON(t, `{
		"type": "object",
		"required": ["user"],
		"properties": {
			"user": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id":   {"type": "string"},
					"tags": {"type": "array", "items": {"type": "string"}}
				}
			},
			"meta": {"type": "object"}
		}
	}`)
	idx := skemadiff.Index(schema)

	want := []string{"/", "/user", "/user/id", "/user/tags", "/user/tags/items", "/meta"}
	if len(idx) != len(want) {
		t.Fatalf("index has %d entries, want %d: %v", len(idx), len(want), idx)
	}
	for _, addr := range want {
		if _, ok := idx[addr]; !ok {
			t.Fatalf("missing address %q", addr)
		}
	}
}

func TestIndex_DescriptorsCaptureTypeAndRequired(t *testing.T) {
	schema := mustJSON(t, `{
		"type": "object",
		"required": ["id"],
		"properties": {
			"id":    {"type": "string"},
			"score": {"type": ["integer", "null"]},
			"free":  {}
		}
	}`)
	idx := skemadiff.Index(schema)

	tests := []struct {
		addr     string
		types    []string
		required bool
	}{
		{"/", []string{"object"}, true},
		{"/id", []string{"string"}, true},
		{"/score", []string{"integer", "null"}, false},
		{"/free", nil, false},
	}
	for _, tc := range tests {
		f, ok := idx[tc.addr]
		if !ok {
			t.Fatalf("missing %q", tc.addr)
		}
		if !reflect.DeepEqual(f.Types, tc.types) {
			t.Fatalf("%s types = %v, want %v", tc.addr, f.Types, tc.types)
		}
		if f.Required != tc.required {
			t.Fatalf("%s required = %v, want %v", tc.addr, f.Required, tc.required)
		}
	}
}

func TestIndex_EscapesPropertyNames(t *testing.T) {
	schema := mustJSON(t, `{
		"type": "object",
		"properties": {
			"a/b": {"type": "string"},
			"x~y": {"type": "string"}
		}
	}`)
	idx := skemadiff.Index(schema)
	for _, addr := range []string{"/a~1b", "/x~0y"} {
		if _, ok := idx[addr]; !ok {
			t.Fatalf("missing escaped address %q in %v", addr, idx)
		}
	}
}

func TestIndex_ArrayItemsInheritArrayRequiredness(t *testing.T) {
	schema := mustJSON(t, `{
		"type": "object",
		"required": ["tags"],
		"properties": {
			"tags":  {"type": "array", "items": {"type": "string"}},
			"notes": {"type": "array", "items": {"type": "string"}}
		}
	}`)
	idx := skemadiff.Index(schema)

	if !idx["/tags/items"].Required {
		t.Fatalf("items of a required array should carry required=true")
	}
	if idx["/notes/items"].Required {
		t.Fatalf("items of an optional array should carry required=false")
	}
}

func TestIndex_MalformedFragmentsDegrade(t *testing.T) {
	schema := mustJSON(t, `{
		"type": "object",
		"properties": "not-a-map"
	}`)
	idx := skemadiff.Index(schema)
	if len(idx) != 1 {
		t.Fatalf("malformed properties should end traversal, got %v", idx)
	}

	idx = skemadiff.Index("just a string")
	f, ok := idx["/"]
	if !ok || f.Types != nil {
		t.Fatalf("non-map root should yield one unconstrained descriptor, got %v", idx)
	}
}

func TestIndex_DescendsWithoutTypeDeclaration(t *testing.T) {
	// Descent keys on structure, not on the declared type: an untyped node
	// with a properties map still has its children indexed, and a declared
	// type never suppresses reachable structure.
	schema := mustJSON(t, `{
		"properties": {
			"a": {"type": "string"},
			"b": {"type": "string", "properties": {"c": {"type": "string"}}}
		}
	}`)
	idx := skemadiff.Index(schema)
	for _, addr := range []string{"/", "/a", "/b", "/b/c"} {
		if _, ok := idx[addr]; !ok {
			t.Fatalf("missing address %q in %v", addr, idx)
		}
	}
	if f := idx["/"]; f.Types != nil {
		t.Fatalf("untyped root must stay unconstrained, got %v", f.Types)
	}
}

func TestIndex_RootIsAlwaysRequired(t *testing.T) {
	idx := skemadiff.Index(mustJSON(t, `{"type": "object"}`))
	if f := idx["/"]; !f.Required {
		t.Fatalf("root must be considered present, got %v", f)
	}
}
