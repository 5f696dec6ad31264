// Package fsx reads files that are about to be uploaded, from local disk or
// from object storage.
package fsx

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a file before it is read
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
}

// FileReader reads whole files
type FileReader interface {
	Stat(ctx context.Context, path string) (FileInfo, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// DetectContentType guesses a content type from the extension, then the bytes
func DetectContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = ct[:i]
		}
		return ct
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return "application/octet-stream"
}

// LocalFileSystem reads from the local disk, relative paths resolved against root
type LocalFileSystem struct {
	root string
}

// NewLocalFileSystem creates a reader rooted at root ("" means the working directory)
func NewLocalFileSystem(root string) *LocalFileSystem {
	return &LocalFileSystem{root: root}
}

func (l *LocalFileSystem) resolve(path string) string {
	if filepath.IsAbs(path) || l.root == "" {
		return path
	}
	return filepath.Join(l.root, path)
}

func (l *LocalFileSystem) Stat(_ context.Context, path string) (FileInfo, error) {
	full := l.resolve(path)
	st, err := os.Stat(full)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return FileInfo{}, fmt.Errorf("%s is a directory", path)
	}
	return FileInfo{
		Name:        st.Name(),
		Size:        st.Size(),
		ContentType: DetectContentType(st.Name(), nil),
	}, nil
}

func (l *LocalFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Router dispatches "scheme://..." paths to a registered reader and
// everything else to the fallback
type Router struct {
	schemes  map[string]FileReader
	fallback FileReader
}

// NewRouter creates a router with the given fallback reader
func NewRouter(fallback FileReader) *Router {
	return &Router{schemes: make(map[string]FileReader), fallback: fallback}
}

// Handle registers reader for scheme, e.g. "s3"
func (r *Router) Handle(scheme string, reader FileReader) {
	r.schemes[scheme] = reader
}

func (r *Router) pick(path string) (FileReader, error) {
	if i := strings.Index(path, "://"); i > 0 {
		scheme := path[:i]
		reader, ok := r.schemes[scheme]
		if !ok {
			return nil, fmt.Errorf("no reader registered for scheme %q", scheme)
		}
		return reader, nil
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("no reader for %s", path)
	}
	return r.fallback, nil
}

func (r *Router) Stat(ctx context.Context, path string) (FileInfo, error) {
	reader, err := r.pick(path)
	if err != nil {
		return FileInfo{}, err
	}
	return reader.Stat(ctx, path)
}

func (r *Router) ReadFile(ctx context.Context, path string) ([]byte, error) {
	reader, err := r.pick(path)
	if err != nil {
		return nil, err
	}
	return reader.ReadFile(ctx, path)
}
