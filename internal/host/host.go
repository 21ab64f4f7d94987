// Package host defines the contracts of the surrounding runtime: the
// bookmark tree service and the key/value storage service. The grid core
// only ever talks to these interfaces; a local SQLite implementation lives
// in internal/storage.
package host

import (
	"errors"

	"github.com/tabgrid/tabgrid/internal/model"
)

// ErrNotFound is returned when an operation names an unknown node.
var ErrNotFound = errors.New("node not found")

// ErrUnavailable is returned when a host service is not present in the
// current context. Consumers degrade to read-only behavior instead of
// failing hard.
var ErrUnavailable = errors.New("host service unavailable")

// CreateParams holds parameters for creating a node. A node with a URL is a
// bookmark, without one a folder.
type CreateParams struct {
	ParentID  string
	Title     string
	URL       string
	DateAdded int64
}

// Bookmarks is the host bookmark service.
type Bookmarks interface {
	// GetTree returns the root of the full bookmark tree.
	GetTree() (*model.Node, error)

	// Create appends a new node to the parent's children and returns it.
	Create(params CreateParams) (*model.Node, error)

	// Update changes a node's title.
	Update(id string, title string) error

	// Move reparents or repositions a node. For a bookmark, index is the
	// target position among the new parent's URL-bearing children; for a
	// folder it counts all children. A negative index appends.
	Move(id string, parentID string, index int) error

	// Remove deletes a leaf node or an empty folder.
	Remove(id string) error

	// RemoveTree deletes a folder and all of its descendants.
	RemoveTree(id string) error
}

// KV is the host key/value storage service.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores the value under the key, replacing any previous value.
	Set(key string, value []byte) error
}
