package jsonadapt

import "testing"

func TestDetectDuplicateKeys_NoDup(t *testing.T) {
	iss, err := DetectDuplicateKeys([]byte(`{"a":1,"b":{"a":2}}`), 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectDuplicateKeys_WithDup(t *testing.T) {
	iss, err := DetectDuplicateKeys([]byte(`{"a":1,"a":2,"n":[{"k":1,"k":2}]}`), 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 2 {
		t.Fatalf("expected 2 duplicate_key issues, got %v", iss)
	}
	if iss[0].Code != CodeDuplicateKey || iss[0].Path != "a" {
		t.Fatalf("expected duplicate_key at a, got %s at %q", iss[0].Code, iss[0].Path)
	}
	if iss[1].Path != "n[0].k" {
		t.Fatalf("expected n[0].k, got %q", iss[1].Path)
	}
}

func TestDetectDuplicateKeys_Capped(t *testing.T) {
	iss, err := DetectDuplicateKeys([]byte(`{"a":1,"a":2,"a":3}`), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(iss) != 1 {
		t.Fatalf("expected one capped issue, got %v", iss)
	}
}

func TestDetectDuplicateKeys_Malformed(t *testing.T) {
	if _, err := DetectDuplicateKeys([]byte(`{"a":`), 0); err == nil {
		t.Fatal("expected parse error")
	}
}
