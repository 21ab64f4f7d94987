package model

// Bookmark is a leaf projection of a tree node.
type Bookmark struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	ParentID  string `json:"parentId,omitempty"`
	DateAdded int64  `json:"dateAdded,omitempty"`
}
