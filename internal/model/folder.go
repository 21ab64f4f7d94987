package model

// FolderInfo is the subset of a container node shown on a folder card.
type FolderInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Folder is one display unit of the grid: a container node plus its direct
// leaf children, in host child order.
type Folder struct {
	Info  FolderInfo `json:"info"`
	Links []Bookmark `json:"links"`
}

// BookmarksData is the flattened view of the host tree.
type BookmarksData struct {
	Folders []Folder   `json:"folders"`
	Links   []Bookmark `json:"links"`
}

// FolderByID finds a folder by its container ID, returns nil if not found.
func (d *BookmarksData) FolderByID(id string) *Folder {
	for i := range d.Folders {
		if d.Folders[i].Info.ID == id {
			return &d.Folders[i]
		}
	}
	return nil
}

// FolderIDs returns the folder container IDs in current order.
func (d *BookmarksData) FolderIDs() []string {
	ids := make([]string, len(d.Folders))
	for i, f := range d.Folders {
		ids[i] = f.Info.ID
	}
	return ids
}
