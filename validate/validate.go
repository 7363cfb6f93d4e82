// Package validate delegates payload validation to a third-party schema
// validator behind a narrow boundary. The diff core never imports it; callers
// use it to check example payloads against a normalized (or external) schema.
package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"
)

// Error is one structured validation error record: a pointer-style location
// into the payload plus a message. An empty location defaults to the root
// path.
type Error struct {
	InstanceLocation string `json:"instanceLocation"`
	Message          string `json:"message"`
}

// Result is the boundary's pass/fail outcome. Errors is populated only when
// OK is false.
type Result struct {
	OK     bool    `json:"ok"`
	Errors []Error `json:"errors,omitempty"`
}

// Validator checks a payload against a schema, collecting all applicable
// errors rather than stopping at the first. A non-nil error means the schema
// itself could not be compiled; that failure is propagated, never masked.
type Validator interface {
	Validate(ctx context.Context, schema, payload any) (Result, error)
}

// New returns the default Validator, backed by kin-openapi in permissive,
// collect-all-errors mode.
func New() Validator { return kinValidator{} }

type kinValidator struct{}

func (kinValidator) Validate(ctx context.Context, schema, payload any) (Result, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return Result{}, fmt.Errorf("validate: encode schema: %w", err)
	}
	var compiled openapi3.Schema
	if err := compiled.UnmarshalJSON(data); err != nil {
		return Result{}, fmt.Errorf("validate: compile schema: %w", err)
	}
	if err := compiled.Validate(ctx); err != nil {
		return Result{}, fmt.Errorf("validate: compile schema: %w", err)
	}

	err = compiled.VisitJSON(payload, openapi3.MultiErrors())
	if err == nil {
		return Result{OK: true}, nil
	}
	return Result{Errors: collectErrors(err)}, nil
}

func collectErrors(err error) []Error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		out := make([]Error, 0, len(multi))
		for _, e := range multi {
			out = append(out, toError(e))
		}
		return out
	}
	return []Error{toError(err)}
}

func toError(err error) Error {
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return Error{InstanceLocation: pointer(se.JSONPointer()), Message: se.Reason}
	}
	return Error{InstanceLocation: "/", Message: err.Error()}
}

// pointer renders a JSON Pointer from path segments, escaping per RFC6901.
// Empty segments collapse to the root path.
func pointer(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}

// Render formats error records for human display, one line per record in the
// form "- <location> <message>", falling back to the literal "invalid" when a
// record has no message. No errors renders as the empty string.
func Render(errs []Error) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		msg := e.Message
		if msg == "" {
			msg = "invalid"
		}
		lines = append(lines, "- "+loc+" "+msg)
	}
	return strings.Join(lines, "\n")
}
