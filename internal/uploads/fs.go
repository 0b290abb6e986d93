package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore writes images under root and serves them from publicBase.
type FSStore struct {
	root       string
	publicBase string
}

func NewFSStore(root, publicBase string) (*FSStore, error) {
	if root == "" {
		return nil, fmt.Errorf("upload root required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FSStore{root: root, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (s *FSStore) Driver() string { return "fs" }

func (s *FSStore) Root() string { return s.root }

func (s *FSStore) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	path := filepath.Join(s.root, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.publicBase + "/" + name, nil
}
