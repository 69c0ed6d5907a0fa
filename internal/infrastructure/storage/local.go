package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects on the filesystem and serves them under a public base
// URL. It does not authorize reads, so keep it out of production.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage.NewLocal: failed to make path %q absolute: %w", root, err)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("storage.NewLocal: failed to create path %q: %w", root, err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Local) Root() string {
	return s.root
}

func (s *Local) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
		return "", err
	}

	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return name, nil
}

func (s *Local) URL(ctx context.Context, id string) (string, error) {
	name, err := cleanName(id)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(name))); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoObject
		}
		return "", err
	}

	segments := strings.Split(name, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/"), nil
}
