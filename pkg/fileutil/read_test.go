package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolkit.log")
	content := "line one\nline two\nline three\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		limit int64
		want  string
	}{
		{"whole file", 1024, content},
		{"default limit", 0, content},
		{"drops partial first line", 15, "line three\n"},
		{"exact line boundary", int64(len("line three\n")) + 1, "line three\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTail(path, tt.limit)
			if err != nil {
				t.Fatalf("ReadTail() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadTail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadTail_Missing(t *testing.T) {
	if _, err := ReadTail(filepath.Join(t.TempDir(), "nope.log"), 10); err == nil {
		t.Error("expected error for missing file")
	}
}
