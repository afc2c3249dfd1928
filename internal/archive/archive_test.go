package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalDirSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	a, err := NewLocalDir(dir)
	if err != nil {
		t.Fatalf("NewLocalDir() error = %v", err)
	}

	data := []byte("views,country\n10,US\n")
	first, err := a.Save(context.Background(), "processed_views.csv", data)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := a.Save(context.Background(), "processed_views.csv", data)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if first == second {
		t.Errorf("Save() returned %q twice, want unique paths", first)
	}
	if filepath.Dir(first) != dir {
		t.Errorf("Save() dir = %q, want %q", filepath.Dir(first), dir)
	}
	base := filepath.Base(first)
	if !strings.HasPrefix(base, "processed_") || !strings.HasSuffix(base, "_views.csv") {
		t.Errorf("Save() name = %q, want processed_<id>_views.csv", base)
	}

	got, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("file contents = %q, want %q", got, data)
	}
}

func TestLocalDirSaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	a, err := NewLocalDir(dir)
	if err != nil {
		t.Fatalf("NewLocalDir() error = %v", err)
	}

	path, err := a.Save(context.Background(), "../../etc/processed_x.csv", []byte("a\n1\n"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Save() wrote to %q, want inside %q", path, dir)
	}
}

func TestLocalDirSaveCancelled(t *testing.T) {
	a, err := NewLocalDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalDir() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Save(ctx, "processed_x.csv", nil); err == nil {
		t.Error("Save() with cancelled context succeeded, want error")
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		in     string
		prefix string
		suffix string
	}{
		{"processed_views.csv", "processed_", "_views.csv"},
		{"views.csv", "", "_views.csv"},
		{"dir/processed_a_b.csv", "processed_", "_a_b.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := objectName(tt.in)
			if !strings.HasPrefix(got, tt.prefix) || !strings.HasSuffix(got, tt.suffix) {
				t.Errorf("objectName(%q) = %q, want prefix %q suffix %q", tt.in, got, tt.prefix, tt.suffix)
			}
			if strings.Contains(got, "/") {
				t.Errorf("objectName(%q) = %q, contains a path separator", tt.in, got)
			}
		})
	}
}
