package memory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRememberRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	f := Open(path)

	saved, err := f.Remember("alice@we3vision.com", "my name is Alice")
	if err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if !saved {
		t.Fatal("self-description was not saved")
	}

	facts, err := f.Facts("alice@we3vision.com")
	if err != nil {
		t.Fatalf("Facts: %v", err)
	}
	if len(facts) != 1 || facts[0] != "my name is Alice" {
		t.Fatalf("facts = %v", facts)
	}

	// a fresh handle reads the same file
	facts, err = Open(path).Facts("alice@we3vision.com")
	if err != nil {
		t.Fatalf("Facts after reopen: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("facts after reopen = %v", facts)
	}
}

func TestRememberDeduplicates(t *testing.T) {
	f := Open(filepath.Join(t.TempDir(), "memory.json"))

	f.Remember("a@b.c", "i like coffee")
	saved, err := f.Remember("a@b.c", "I LIKE COFFEE")
	if err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if saved {
		t.Error("duplicate fact was saved again")
	}

	facts, _ := f.Facts("a@b.c")
	if len(facts) != 1 {
		t.Fatalf("facts = %v", facts)
	}
}

func TestRememberIgnoresNonSelfDescriptions(t *testing.T) {
	f := Open(filepath.Join(t.TempDir(), "memory.json"))

	for _, text := range []string{"what is the status", "show all projects", ""} {
		saved, err := f.Remember("a@b.c", text)
		if err != nil {
			t.Fatalf("Remember(%q): %v", text, err)
		}
		if saved {
			t.Errorf("Remember(%q) saved, want skipped", text)
		}
	}
}

func TestFactsIsolatedPerUser(t *testing.T) {
	f := Open(filepath.Join(t.TempDir(), "memory.json"))

	f.Remember("a@b.c", "call me Al")
	facts, _ := f.Facts("someone-else@b.c")
	if len(facts) != 0 {
		t.Fatalf("facts = %v, want none", facts)
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := Open(path)

	facts, err := f.Facts("a@b.c")
	if err != nil {
		t.Fatalf("Facts on corrupt file: %v", err)
	}
	if len(facts) != 0 {
		t.Fatalf("facts = %v", facts)
	}

	if _, err := f.Remember("a@b.c", "i'm Bob"); err != nil {
		t.Fatalf("Remember after corrupt file: %v", err)
	}
}
