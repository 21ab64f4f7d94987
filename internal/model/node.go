package model

// Node is one entry of the host bookmark tree. Containers carry Children,
// leaves carry a URL; the host never sets both.
type Node struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	URL       string  `json:"url,omitempty"`
	DateAdded int64   `json:"dateAdded,omitempty"`
	Children  []*Node `json:"children,omitempty"`
}

// IsLink returns true for leaf nodes.
func (n *Node) IsLink() bool {
	return n.URL != ""
}

// FindByID searches the subtree rooted at n for a node with the given ID.
// Returns nil if not found.
func (n *Node) FindByID(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// FindChildByTitle returns the first direct container child with the given
// title, or nil.
func (n *Node) FindChildByTitle(title string) *Node {
	for _, c := range n.Children {
		if !c.IsLink() && c.Title == title {
			return c
		}
	}
	return nil
}

// CountLinks returns the number of leaf nodes in the subtree rooted at n.
func (n *Node) CountLinks() int {
	if n == nil {
		return 0
	}
	if n.IsLink() {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += c.CountLinks()
	}
	return count
}
