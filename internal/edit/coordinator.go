// Package edit sequences user-initiated structural changes: create, rename,
// delete, move and reorder. Every operation goes through a single-slot
// mutation queue, updates the rendered grid optimistically, and rolls the
// view back when the host call fails.
package edit

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tabgrid/tabgrid/internal/flatten"
	"github.com/tabgrid/tabgrid/internal/host"
	"github.com/tabgrid/tabgrid/internal/model"
	"github.com/tabgrid/tabgrid/internal/order"
	"github.com/tabgrid/tabgrid/internal/search"
	"github.com/tabgrid/tabgrid/internal/session"
)

// Coordinator owns all structural mutations of the grid. It is the only
// writer of the session's bookmark data and folder rank map.
type Coordinator struct {
	host    host.Bookmarks
	orders  *order.Store
	state   *session.State
	notify  Notifier
	confirm Confirmer
	render  RenderFunc
	rootID  string
	exclude flatten.ExcludeFunc

	// mu is the mutation queue: one in-flight structural operation.
	mu sync.Mutex
}

// Params holds the collaborators a Coordinator needs.
type Params struct {
	Host    host.Bookmarks
	Orders  *order.Store
	State   *session.State
	Notify  Notifier
	Confirm Confirmer
	Render  RenderFunc

	// RootID is the container new folders are created under.
	RootID string

	// Exclude overrides the system-folder filter, optional.
	Exclude flatten.ExcludeFunc
}

// New creates a Coordinator.
func New(p Params) *Coordinator {
	exclude := p.Exclude
	if exclude == nil {
		exclude = flatten.IsSystemFolder
	}
	return &Coordinator{
		host:    p.Host,
		orders:  p.Orders,
		state:   p.State,
		notify:  p.Notify,
		confirm: p.Confirm,
		render:  p.Render,
		rootID:  p.RootID,
		exclude: exclude,
	}
}

// Init loads the persisted folder order and performs the first fetch+render.
func (c *Coordinator) Init() error {
	c.mu.Lock()
	c.state.FolderRank = c.orders.Load()
	c.mu.Unlock()
	return c.Refresh()
}

// Refresh refetches the host tree, re-flattens, re-applies the folder order
// and re-renders.
func (c *Coordinator) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked()
}

func (c *Coordinator) refreshLocked() error {
	root, err := c.host.GetTree()
	if err != nil {
		c.notify.Error("Failed to load bookmarks")
		return fmt.Errorf("load bookmarks: %w", err)
	}
	data := flatten.FlattenFiltered(root, c.exclude)
	c.state.Data = &data
	c.renderLocked()
	return nil
}

// renderLocked renders the current data with the folder order applied.
// Callers must hold mu.
func (c *Coordinator) renderLocked() {
	if c.state.Data == nil {
		c.render(nil, false)
		return
	}
	ordered := order.Apply(*c.state.Data, c.state.FolderRank)
	c.render(ordered.Folders, false)
}

// Search renders the folders filtered by the query, or the full ordered grid
// for an empty query.
func (c *Coordinator) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Data == nil {
		c.render(nil, false)
		return
	}
	ordered := order.Apply(*c.state.Data, c.state.FolderRank)
	if strings.TrimSpace(query) == "" {
		c.render(ordered.Folders, false)
		return
	}
	c.render(search.FilterFolders(ordered.Folders, query), true)
}

// CreateFolder validates the title locally and creates a folder under the
// grid root. Invalid titles never reach the host.
func (c *Coordinator) CreateFolder(title string) error {
	name, err := model.ValidateTitle(title)
	if err != nil {
		c.notify.Error(err.Error())
		return err
	}

	err = c.run(command{
		call: func() error {
			_, err := c.host.Create(host.CreateParams{ParentID: c.rootID, Title: name})
			return err
		},
	})
	if err != nil {
		c.notify.Error("Failed to create folder. Please try again.")
		return fmt.Errorf("create folder: %w", err)
	}

	if err := c.Refresh(); err != nil {
		return err
	}
	c.notify.Success(fmt.Sprintf("Folder %q created", name))
	return nil
}

// Rename updates a folder or bookmark title. A value equal to the current
// title after trimming is treated as a cancel, not an update. Returns true
// when an update was performed.
func (c *Coordinator) Rename(id, current, next string) (bool, error) {
	name, err := model.ValidateTitle(next)
	if err != nil {
		c.notify.Error(err.Error())
		return false, err
	}
	if name == strings.TrimSpace(current) {
		return false, nil
	}

	err = c.run(command{
		call: func() error {
			return c.host.Update(id, name)
		},
	})
	if err != nil {
		c.notify.Error("Failed to rename")
		return false, fmt.Errorf("rename %s: %w", id, err)
	}

	c.mu.Lock()
	c.patchTitle(id, name)
	c.renderLocked()
	c.mu.Unlock()

	c.notify.Success(fmt.Sprintf("Renamed to %q", name))
	return true, nil
}

// patchTitle updates the in-memory title of a folder or link so the grid
// reflects a rename without a refetch. Callers must hold mu.
func (c *Coordinator) patchTitle(id, title string) {
	if c.state.Data == nil {
		return
	}
	for i := range c.state.Data.Folders {
		f := &c.state.Data.Folders[i]
		if f.Info.ID == id {
			f.Info.Title = title
		}
		for j := range f.Links {
			if f.Links[j].ID == id {
				f.Links[j].Title = title
			}
		}
	}
	for i := range c.state.Data.Links {
		if c.state.Data.Links[i].ID == id {
			c.state.Data.Links[i].Title = title
		}
	}
}

// DeleteBookmark removes a single bookmark. The link disappears from the
// grid immediately; if the host call fails it comes back. A folder card left
// empty by the removal is pruned from the view until the next fetch, which
// re-derives empty folders from the tree.
func (c *Coordinator) DeleteBookmark(folderID, id string) error {
	var (
		removed    model.Bookmark
		linkIdx    = -1
		flatIdx    = -1
		prunedCard *model.Folder
		cardIdx    = -1
	)

	err := c.run(command{
		forward: func() {
			if c.state.Data == nil {
				return
			}
			f := c.state.Data.FolderByID(folderID)
			if f == nil {
				return
			}
			for i, l := range f.Links {
				if l.ID == id {
					removed = l
					linkIdx = i
					break
				}
			}
			if linkIdx < 0 {
				return
			}
			f.Links = append(f.Links[:linkIdx:linkIdx], f.Links[linkIdx+1:]...)
			flatIdx = removeFlatLink(c.state.Data, id)

			if len(f.Links) == 0 {
				for i := range c.state.Data.Folders {
					if c.state.Data.Folders[i].Info.ID == folderID {
						cardIdx = i
						card := c.state.Data.Folders[i]
						prunedCard = &card
						c.state.Data.Folders = append(
							c.state.Data.Folders[:i:i],
							c.state.Data.Folders[i+1:]...,
						)
						break
					}
				}
			}
			c.renderLocked()
		},
		call: func() error {
			return c.host.Remove(id)
		},
		rollback: func() {
			if linkIdx < 0 {
				return
			}
			if prunedCard != nil {
				c.state.Data.Folders = insertFolder(c.state.Data.Folders, cardIdx, *prunedCard)
			}
			f := c.state.Data.FolderByID(folderID)
			if f != nil {
				f.Links = insertLink(f.Links, linkIdx, removed)
			}
			if flatIdx >= 0 {
				c.state.Data.Links = insertLink(c.state.Data.Links, flatIdx, removed)
			}
			c.renderLocked()
		},
	})
	if err != nil {
		c.notify.Error("Failed to delete bookmark")
		return fmt.Errorf("delete bookmark %s: %w", id, err)
	}

	c.notify.Success("Bookmark deleted")
	return nil
}

// DeleteFolder asks for confirmation naming the bookmark count, then removes
// the folder and its contents recursively.
func (c *Coordinator) DeleteFolder(id string) error {
	c.mu.Lock()
	var target *model.Folder
	if c.state.Data != nil {
		target = c.state.Data.FolderByID(id)
	}
	c.mu.Unlock()
	if target == nil {
		return fmt.Errorf("delete folder %s: %w", id, host.ErrNotFound)
	}

	prompt := fmt.Sprintf("Delete folder %q and its %d bookmarks?", target.Info.Title, len(target.Links))
	if !c.confirm.Confirm(prompt) {
		return nil
	}

	var (
		removedCard model.Folder
		cardIdx     = -1
	)

	err := c.run(command{
		forward: func() {
			for i := range c.state.Data.Folders {
				if c.state.Data.Folders[i].Info.ID == id {
					cardIdx = i
					removedCard = c.state.Data.Folders[i]
					c.state.Data.Folders = append(
						c.state.Data.Folders[:i:i],
						c.state.Data.Folders[i+1:]...,
					)
					break
				}
			}
			for _, l := range removedCard.Links {
				removeFlatLink(c.state.Data, l.ID)
			}
			c.renderLocked()
		},
		call: func() error {
			return c.host.RemoveTree(id)
		},
		rollback: func() {
			if cardIdx < 0 {
				return
			}
			c.state.Data.Folders = insertFolder(c.state.Data.Folders, cardIdx, removedCard)
			c.state.Data.Links = append(c.state.Data.Links, removedCard.Links...)
			c.renderLocked()
		},
	})
	if err != nil {
		c.notify.Error("Failed to delete folder")
		return fmt.Errorf("delete folder %s: %w", id, err)
	}

	// Nested folders may have gone with the tree; re-derive.
	if err := c.Refresh(); err != nil {
		return err
	}
	c.notify.Success(fmt.Sprintf("Folder %q deleted", removedCard.Info.Title))
	return nil
}

// MoveBookmark moves a bookmark to a new folder and/or position. Indexes
// count sibling links only. A drop that changes neither folder nor position
// is a no-op.
func (c *Coordinator) MoveBookmark(id, srcFolderID, dstFolderID string, oldIndex, newIndex int) error {
	folderChanged := srcFolderID != dstFolderID
	if !folderChanged && oldIndex == newIndex {
		return nil
	}

	var (
		moved   model.Bookmark
		applied bool
	)

	err := c.run(command{
		forward: func() {
			if c.state.Data == nil {
				return
			}
			src := c.state.Data.FolderByID(srcFolderID)
			dst := c.state.Data.FolderByID(dstFolderID)
			if src == nil || dst == nil || oldIndex < 0 || oldIndex >= len(src.Links) {
				return
			}
			if src.Links[oldIndex].ID != id {
				return
			}
			moved = src.Links[oldIndex]
			src.Links = append(src.Links[:oldIndex:oldIndex], src.Links[oldIndex+1:]...)
			moved.ParentID = dstFolderID
			dst.Links = insertLink(dst.Links, clampIndex(newIndex, len(dst.Links)), moved)
			applied = true
			c.renderLocked()
		},
		call: func() error {
			return c.host.Move(id, dstFolderID, newIndex)
		},
		rollback: func() {
			if !applied {
				return
			}
			dst := c.state.Data.FolderByID(dstFolderID)
			src := c.state.Data.FolderByID(srcFolderID)
			if dst != nil {
				for i, l := range dst.Links {
					if l.ID == id {
						dst.Links = append(dst.Links[:i:i], dst.Links[i+1:]...)
						break
					}
				}
			}
			if src != nil {
				moved.ParentID = srcFolderID
				src.Links = insertLink(src.Links, clampIndex(oldIndex, len(src.Links)), moved)
			}
			c.renderLocked()
		},
	})
	if err != nil {
		c.notify.Error("Failed to move bookmark")
		return fmt.Errorf("move bookmark %s: %w", id, err)
	}

	if folderChanged {
		// Cross-folder moves refresh so per-folder counts stay correct.
		if err := c.Refresh(); err != nil {
			return err
		}
		c.notify.Success("Bookmark moved to another folder")
	} else {
		c.notify.Success("Bookmark reordered")
	}
	return nil
}

// ReorderFolders persists a new folder order read from the grid after a
// drop. On failure the grid reverts and neither the in-memory rank map nor
// the durable record changes.
func (c *Coordinator) ReorderFolders(ids []string) error {
	c.mu.Lock()
	var prev []string
	if c.state.Data != nil {
		ordered := order.Apply(*c.state.Data, c.state.FolderRank)
		prev = ordered.FolderIDs()
	}
	c.mu.Unlock()

	if equalIDs(ids, prev) {
		return nil
	}

	err := c.run(command{
		forward: func() {
			c.render(c.foldersInOrder(ids), false)
		},
		call: func() error {
			return c.orders.Save(ids)
		},
		rollback: func() {
			c.render(c.foldersInOrder(prev), false)
		},
	})
	if err != nil {
		c.notify.Error("Failed to save folder order")
		return fmt.Errorf("reorder folders: %w", err)
	}

	c.mu.Lock()
	c.state.FolderRank = order.RankOrder(ids)
	c.mu.Unlock()

	c.notify.Success("Folder order saved")
	return nil
}

// foldersInOrder returns the session's folders arranged per ids; folders not
// named keep their fetch order at the end. Callers must hold mu or accept a
// racy read from the render path.
func (c *Coordinator) foldersInOrder(ids []string) []model.Folder {
	if c.state.Data == nil {
		return nil
	}
	byID := make(map[string]model.Folder, len(c.state.Data.Folders))
	for _, f := range c.state.Data.Folders {
		byID[f.Info.ID] = f
	}
	result := make([]model.Folder, 0, len(c.state.Data.Folders))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			result = append(result, f)
			taken[id] = true
		}
	}
	for _, f := range c.state.Data.Folders {
		if !taken[f.Info.ID] {
			result = append(result, f)
		}
	}
	return result
}

// removeFlatLink drops the link from the flat list and returns the index it
// held, or -1 when absent.
func removeFlatLink(data *model.BookmarksData, id string) int {
	for i, l := range data.Links {
		if l.ID == id {
			data.Links = append(data.Links[:i:i], data.Links[i+1:]...)
			return i
		}
	}
	return -1
}

func insertLink(links []model.Bookmark, idx int, link model.Bookmark) []model.Bookmark {
	idx = clampIndex(idx, len(links))
	links = append(links, model.Bookmark{})
	copy(links[idx+1:], links[idx:])
	links[idx] = link
	return links
}

func insertFolder(folders []model.Folder, idx int, folder model.Folder) []model.Folder {
	idx = clampIndex(idx, len(folders))
	folders = append(folders, model.Folder{})
	copy(folders[idx+1:], folders[idx:])
	folders[idx] = folder
	return folders
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
