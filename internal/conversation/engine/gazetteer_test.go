package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGazetteerMatchReturnsCanonicalSpelling(t *testing.T) {
	g := NewGazetteer()

	got, ok := g.Match("somewhere in koramangala please")
	if !ok || got != "Koramangala" {
		t.Fatalf("expected Koramangala, got %q (ok=%v)", got, ok)
	}

	if _, ok := g.Match("somewhere in pune"); ok {
		t.Fatal("unknown locality must not match")
	}
}

func TestGazetteerCanonical(t *testing.T) {
	g := NewGazetteer()

	got, ok := g.Canonical("  hsr layout ")
	if !ok || got != "HSR Layout" {
		t.Fatalf("expected HSR Layout, got %q (ok=%v)", got, ok)
	}
}

func TestLoadGazetteerExtendsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localities.yaml")
	if err := os.WriteFile(path, []byte("localities:\n  - Sarjapur Road\n  - Kammanahalli\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGazetteer(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got, ok := g.Match("shop on sarjapur road"); !ok || got != "Sarjapur Road" {
		t.Fatalf("expected Sarjapur Road, got %q (ok=%v)", got, ok)
	}
	if got, ok := g.Match("somewhere in whitefield"); !ok || got != "Whitefield" {
		t.Fatalf("defaults must survive, got %q (ok=%v)", got, ok)
	}
}

func TestLoadGazetteerEmptyPathUsesDefaults(t *testing.T) {
	g, err := LoadGazetteer("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := g.Match("a spot in jayanagar"); !ok {
		t.Fatal("defaults missing")
	}
}

func TestLoadGazetteerRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("localities: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGazetteer(path); err == nil {
		t.Fatal("expected parse error")
	}
}
