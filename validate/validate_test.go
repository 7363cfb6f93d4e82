package validate_test

import (
	"context"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/skemadiff/validate"
)

func doc(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestValidate_OK(t *testing.T) {
	schema := doc(t, `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`)
	res, err := validate.New().Validate(context.Background(), schema, doc(t, `{"name": "ok"}`))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !res.OK || len(res.Errors) != 0 {
		t.Fatalf("expected pass, got %+v", res)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	schema := doc(t, `{
		"type": "object",
		"required": ["name", "age"],
		"properties": {
			"name": {"type": "string"},
			"age":  {"type": "integer"}
		}
	}`)
	res, err := validate.New().Validate(context.Background(), schema, doc(t, `{"age": "seven"}`))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.OK {
		t.Fatalf("expected failure, got %+v", res)
	}
	if len(res.Errors) < 2 {
		t.Fatalf("expected all errors collected (missing name + wrong age type), got %+v", res.Errors)
	}
}

func TestValidate_CompileFailurePropagates(t *testing.T) {
	schema := doc(t, `{"type": {"not": "a type"}}`)
	_, err := validate.New().Validate(context.Background(), schema, doc(t, `{}`))
	if err == nil {
		t.Fatalf("expected schema compilation failure to propagate")
	}
}

func TestRender(t *testing.T) {
	if got := validate.Render(nil); got != "" {
		t.Fatalf("no errors must render as empty string, got %q", got)
	}

	got := validate.Render([]validate.Error{
		{InstanceLocation: "/age", Message: "value must be an integer"},
		{InstanceLocation: "", Message: ""},
	})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if lines[0] != "- /age value must be an integer" {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[1] != "- / invalid" {
		t.Fatalf("empty record must default to root path and 'invalid', got %q", lines[1])
	}
}
