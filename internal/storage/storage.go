package storage

import (
	"context"
	"io"
	"strings"
)

// Store persists uploaded files. Records keep only the generated name;
// URL turns it back into something a client can fetch.
type Store interface {
	Save(ctx context.Context, name string, body io.Reader, contentType string) error
	URL(name string) string
}

// isAbsoluteURL lets records carry external image URLs untouched.
func isAbsoluteURL(name string) bool {
	return strings.Contains(name, "://")
}
