// Package storage moves the user data document between the process, the
// local SQLite cache and a file in a GitHub repository.
package storage

import (
	"context"

	"github.com/alexanderramin/syllabus/internal/userdata"
)

// Remote is a document as read from a Store with the version token
// needed to overwrite it.
type Remote struct {
	Doc *userdata.Document
	SHA string
}

// Store is a remote home for the user data document.
type Store interface {
	// Load returns ErrNotFound when no document has been written yet.
	Load(ctx context.Context) (*Remote, error)

	// Save writes doc over the version identified by sha (empty to
	// create) and returns the new version token. A stale sha yields
	// ErrStaleWrite.
	Save(ctx context.Context, doc *userdata.Document, sha string) (string, error)
}
