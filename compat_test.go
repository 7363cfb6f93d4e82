package skemadiff_test

import (
	"testing"

	skemadiff "github.com/reoring/skemadiff"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		base []string
		next []string
		want bool
	}{
		{"identical single", []string{"string"}, []string{"string"}, true},
		{"replaced single", []string{"integer"}, []string{"string"}, false},
		{"base unconstrained never breaks", nil, []string{"string"}, true},
		{"both unconstrained", nil, nil, true},
		{"constraint regression", []string{"string"}, nil, false},
		{"union narrowing keeps overlap", []string{"string", "null"}, []string{"string"}, true},
		{"union widening keeps overlap", []string{"string"}, []string{"string", "null"}, true},
		{"disjoint unions", []string{"integer", "number"}, []string{"string", "boolean"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := skemadiff.Compatible(tc.base, tc.next); got != tc.want {
				t.Fatalf("Compatible(%v, %v) = %v, want %v", tc.base, tc.next, got, tc.want)
			}
		})
	}
}
