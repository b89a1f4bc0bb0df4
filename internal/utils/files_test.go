package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileCreatesParentAndReplaces(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "a.csv")
	if err := SafeWriteFile(p, []byte("one")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := SafeWriteFile(p, []byte("two")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "two" {
		t.Fatalf("got %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]any{"a": "x&y"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "{\n  \"a\": \"x&y\"\n}"
	if string(b) != want {
		t.Fatalf("got %q want %q", b, want)
	}
}
