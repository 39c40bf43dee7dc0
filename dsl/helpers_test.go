package dsl_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	jsonadapt "github.com/reoring/jsonadapt"
	g "github.com/reoring/jsonadapt/dsl"
	"github.com/reoring/jsonadapt/value"
)

var cmpEmpty = cmpopts.EquateEmpty()

func mustParse(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := jsonadapt.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

// roundTrip serializes in, checks the JSON text and reads it back into a
// zero T, which must equal in.
func roundTrip[T any](t *testing.T, a g.Adapter[T], in T, wantJSON string, opts ...cmp.Option) {
	t.Helper()
	j, err := a.Serialize(&in)
	if err != nil {
		t.Fatalf("serialize %v: %v", in, err)
	}
	if got := j.String(); got != wantJSON {
		t.Fatalf("serialize: got %s want %s", got, wantJSON)
	}
	back, err := jsonadapt.Deserialize(a, mustParse(t, wantJSON))
	if err != nil {
		t.Fatalf("deserialize %s: %v", wantJSON, err)
	}
	if diff := cmp.Diff(in, back, opts...); diff != "" {
		t.Fatalf("round trip (-in +back):\n%s", diff)
	}
}

func firstIssue(t *testing.T, err error) jsonadapt.Issue {
	t.Helper()
	iss, ok := jsonadapt.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got %v", err)
	}
	return iss[0]
}
