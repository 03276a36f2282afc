package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home) // os.UserHomeDir on windows

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/var/models/llm.gguf", "/var/models/llm.gguf"},
		{"~", home},
		{"~/models/llm.gguf", filepath.Join(home, "models", "llm.gguf")},
	}
	for _, c := range cases {
		got, err := ExpandHome(c.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ExpandHome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPathExists(t *testing.T) {
	model := filepath.Join(t.TempDir(), "llm.gguf")
	if PathExists(model) {
		t.Fatalf("missing model path reported as existing")
	}
	if err := os.WriteFile(model, []byte("gguf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !PathExists(model) {
		t.Fatalf("existing model path reported as missing")
	}
}
