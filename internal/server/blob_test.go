package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskBlobStore_SaveAndOpen(t *testing.T) {
	root := t.TempDir()
	blobs, err := NewDiskBlobStore(root)
	if err != nil {
		t.Fatalf("NewDiskBlobStore: %v", err)
	}

	rel, err := blobs.Save(context.Background(), blobKindImage, "logo.png", strings.NewReader("png bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(rel, "/uploads/images/") || !strings.HasSuffix(rel, "-logo.png") {
		t.Errorf("unexpected relative URL %q", rel)
	}

	rc, err := blobs.Open(context.Background(), rel)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	buf := make([]byte, 16)
	n, _ := rc.Read(buf)
	if got := string(buf[:n]); got != "png bytes" {
		t.Errorf("expected stored content back, got %q", got)
	}
}

func TestDiskBlobStore_SaveStripsDirectories(t *testing.T) {
	root := t.TempDir()
	blobs, err := NewDiskBlobStore(root)
	if err != nil {
		t.Fatalf("NewDiskBlobStore: %v", err)
	}

	rel, err := blobs.Save(context.Background(), blobKindSource, "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(rel, "..") {
		t.Errorf("client-supplied directories must be stripped, got %q", rel)
	}

	entries, err := os.ReadDir(filepath.Join(root, blobKindSource))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stored file, got %d", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), "-passwd") {
		t.Errorf("unexpected stored name %q", entries[0].Name())
	}
}

func TestDiskBlobStore_RemoveMissingIsNil(t *testing.T) {
	blobs, err := NewDiskBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskBlobStore: %v", err)
	}

	if err := blobs.Remove(context.Background(), "/uploads/images/never-existed.png"); err != nil {
		t.Errorf("removing a missing blob must not error, got %v", err)
	}
}

func TestDiskBlobStore_Remove(t *testing.T) {
	root := t.TempDir()
	blobs, err := NewDiskBlobStore(root)
	if err != nil {
		t.Fatalf("NewDiskBlobStore: %v", err)
	}

	rel, err := blobs.Save(context.Background(), blobKindImage, "a.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := blobs.Remove(context.Background(), rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	p := filepath.Join(root, strings.TrimPrefix(rel, "/uploads/"))
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("expected %s to be gone", p)
	}
}

func TestRelativeBlobPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/uploads/images/1-a.png", "images/1-a.png"},
		{"/uploads/sources/1-a.zip", "sources/1-a.zip"},
		{"/uploads/", ""},
		{"/elsewhere/x.png", ""},
		{"/uploads/../users.json", ""},
		{"/uploads/images/../../data.json", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := relativeBlobPath(tt.in); got != tt.want {
			t.Errorf("relativeBlobPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
