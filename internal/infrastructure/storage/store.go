package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoObject    = errors.New("storage: no object")
	ErrInvalidName = errors.New("storage: invalid object name")
)

// Store keeps opaque blobs. Put returns an id that URL later resolves to a
// link the client can follow.
type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	URL(ctx context.Context, id string) (string, error)
}

// LicenseObjectName is the key a doctor's license document is stored under.
func LicenseObjectName(userID uuid.UUID, filename string) string {
	return fmt.Sprintf("doctor-licenses/%s/%s", userID, sanitizeFilename(filename))
}

func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "license"
	}
	return name
}

func cleanName(name string) (string, error) {
	cleaned := path.Clean("/" + name)
	if cleaned == "/" || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
