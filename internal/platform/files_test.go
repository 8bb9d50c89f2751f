package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetHomeDownloadsDir(t *testing.T) {
	dir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("GetHomeDownloadsDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, "Downloads") {
		t.Errorf("GetHomeDownloadsDir() = %s, expected Downloads suffix", dir)
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "nested", "videos")

	if err := CreateDirectoryIfNotExists(target); err != nil {
		t.Fatalf("CreateDirectoryIfNotExists() error: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("created path is not a directory")
	}

	// Second call on an existing directory is a no-op
	if err := CreateDirectoryIfNotExists(target); err != nil {
		t.Errorf("CreateDirectoryIfNotExists() on existing dir: %v", err)
	}
}

func TestOpenFolder_MissingDirectory(t *testing.T) {
	if err := OpenFolder(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("OpenFolder() on missing directory should fail")
	}
}
