// Package flatten transforms the host bookmark tree into the flat
// folders-with-links view the grid renders.
package flatten

import (
	"strings"

	"github.com/tabgrid/tabgrid/internal/model"
)

// systemFolders are the host's built-in containers. They are excluded from
// the editable grid but their nested folders are still collected.
var systemFolders = []string{
	"bookmarks bar",
	"bookmarks toolbar",
	"other bookmarks",
	"mobile bookmarks",
	"reading list",
}

// IsSystemFolder reports whether a container title names a host built-in.
// Matching is case-insensitive substring; an untitled container counts too.
func IsSystemFolder(title string) bool {
	if strings.TrimSpace(title) == "" {
		return true
	}
	lower := strings.ToLower(title)
	for _, name := range systemFolders {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// ExcludeFunc decides whether a container title is kept out of the folder
// list. Excluded containers are still recursed into.
type ExcludeFunc func(title string) bool

// WithExtraNames returns an ExcludeFunc that extends the built-in denylist
// with additional case-insensitive substring names.
func WithExtraNames(names []string) ExcludeFunc {
	if len(names) == 0 {
		return IsSystemFolder
	}
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	return func(title string) bool {
		if IsSystemFolder(title) {
			return true
		}
		lower := strings.ToLower(title)
		for _, n := range lowered {
			if n != "" && strings.Contains(lower, n) {
				return true
			}
		}
		return false
	}
}

// Flatten walks the tree and returns every non-system folder with its direct
// leaf children, plus all leaves flattened. A folder's entry precedes its
// descendants' entries; this fetch order is the baseline the order applier
// re-sorts.
func Flatten(root *model.Node) model.BookmarksData {
	return FlattenFiltered(root, IsSystemFolder)
}

// FlattenFiltered is Flatten with a caller-supplied exclusion predicate.
func FlattenFiltered(root *model.Node, exclude ExcludeFunc) model.BookmarksData {
	if root == nil {
		return model.BookmarksData{Folders: []model.Folder{}, Links: []model.Bookmark{}}
	}
	folders, links := flattenNode(root, exclude)
	if folders == nil {
		folders = []model.Folder{}
	}
	if links == nil {
		links = []model.Bookmark{}
	}
	return model.BookmarksData{Folders: folders, Links: links}
}

func flattenNode(n *model.Node, exclude ExcludeFunc) ([]model.Folder, []model.Bookmark) {
	var own []model.Bookmark
	var descendants []model.Folder
	var descendantLinks []model.Bookmark

	for _, child := range n.Children {
		if child.IsLink() {
			own = append(own, model.Bookmark{
				ID:        child.ID,
				Title:     child.Title,
				URL:       child.URL,
				ParentID:  n.ID,
				DateAdded: child.DateAdded,
			})
			continue
		}
		subFolders, subLinks := flattenNode(child, exclude)
		descendants = append(descendants, subFolders...)
		descendantLinks = append(descendantLinks, subLinks...)
	}

	links := append(append([]model.Bookmark{}, own...), descendantLinks...)

	if exclude(n.Title) {
		return descendants, links
	}

	// The node's own entry goes in front of its descendants. Empty folders
	// stay visible so they can be filled, renamed, or deleted.
	folders := append([]model.Folder{{
		Info:  model.FolderInfo{ID: n.ID, Title: n.Title},
		Links: own,
	}}, descendants...)

	return folders, links
}
