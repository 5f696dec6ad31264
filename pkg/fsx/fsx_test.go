package fsx_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/fsx"
)

type fakeReader struct{ data []byte }

func (f fakeReader) Stat(_ context.Context, path string) (fsx.FileInfo, error) {
	return fsx.FileInfo{Name: filepath.Base(path), Size: int64(len(f.data)), ContentType: "application/pdf"}, nil
}

func (f fakeReader) ReadFile(context.Context, string) ([]byte, error) {
	return f.data, nil
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "cv.pdf", want: "application/pdf"},
		{name: "ME.PNG", want: "image/png"},
		{name: "noext", data: []byte("%PDF-1.7 rest"), want: "application/pdf"},
		{name: "noext", want: "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := fsx.DetectContentType(tt.name, tt.data); got != tt.want {
			t.Errorf("DetectContentType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLocalFileSystem(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "cv.pdf"), []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}
	local := fsx.NewLocalFileSystem(root)

	info, err := local.Stat(ctx, "cv.pdf")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size != 4 || info.ContentType != "application/pdf" {
		t.Errorf("Stat() = %+v", info)
	}
	data, err := local.ReadFile(ctx, filepath.Join(root, "cv.pdf"))
	if err != nil || string(data) != "%PDF" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
	if _, err := local.Stat(ctx, "."); err == nil {
		t.Error("Stat() on a directory should fail")
	}
	if _, err := local.ReadFile(ctx, "missing.pdf"); err == nil {
		t.Error("ReadFile() on a missing file should fail")
	}
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	_ = os.WriteFile(filepath.Join(root, "a.txt"), []byte("local"), 0o600)

	r := fsx.NewRouter(fsx.NewLocalFileSystem(root))
	r.Handle("s3", fakeReader{data: []byte("remote")})

	if data, err := r.ReadFile(ctx, "s3://bucket/cv.pdf"); err != nil || string(data) != "remote" {
		t.Errorf("s3 ReadFile() = %q, %v", data, err)
	}
	if data, err := r.ReadFile(ctx, "a.txt"); err != nil || string(data) != "local" {
		t.Errorf("local ReadFile() = %q, %v", data, err)
	}
	if _, err := r.Stat(ctx, "gs://bucket/cv.pdf"); err == nil {
		t.Error("unregistered scheme should fail")
	}
}
