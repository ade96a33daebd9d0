package dump

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "elements.json")

	SaveJSON(context.Background(), path, map[string]int{"Header": 2, "NarrativeText": 5})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if got["Header"] != 2 {
		t.Errorf("Header = %d, want 2", got["Header"])
	}
}

func TestSaveJSON_UnmarshalableValueSwallowed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")

	// Channels cannot be marshaled; the failure must not panic or write
	SaveJSON(context.Background(), path, make(chan int))

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("dump file should not exist after marshal failure")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")

	WriteFile(context.Background(), path, "the assembled prompt")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	if string(data) != "the assembled prompt" {
		t.Errorf("content = %q", string(data))
	}
}

func TestWriteFile_UnwritablePathSwallowed(t *testing.T) {
	// Writing under a path whose parent is a file must fail quietly
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	WriteFile(context.Background(), filepath.Join(blocker, "inner.txt"), "content")
}
