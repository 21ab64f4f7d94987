// Package session holds the per-process application state. A single State is
// constructed at startup and passed by reference to everything that needs it;
// there is no hidden global.
package session

import "github.com/tabgrid/tabgrid/internal/model"

// DragKind identifies what kind of entity a grab-and-move gesture targets.
type DragKind int

const (
	DragNone DragKind = iota
	DragBookmark
	DragFolder
)

// DragState tracks an in-progress grab within the grid. It is set on drag
// start, updated while the entity moves, and reset on drop or cancel.
type DragState struct {
	Kind           DragKind
	ID             string
	SourceFolderID string
	TargetFolderID string
	SourceIndex    int
}

// Active returns true while a grab is in progress.
func (d *DragState) Active() bool {
	return d.Kind != DragNone
}

// Reset clears the drag bookkeeping.
func (d *DragState) Reset() {
	*d = DragState{SourceIndex: -1}
}

// State is the process-wide session state. Data and FolderRank are written
// only by the mutation coordinator and read by the order applier and the
// render path.
type State struct {
	// Data is the last-fetched flattened bookmark data, in fetch order.
	Data *model.BookmarksData

	// FolderRank caches the persisted folder order, folder id to rank.
	FolderRank map[string]int

	// EditMode is the global structural-edit toggle.
	EditMode bool

	// Drag is the transient grab-and-move bookkeeping.
	Drag DragState
}

// NewState creates an empty session State.
func NewState() *State {
	return &State{
		FolderRank: make(map[string]int),
		Drag:       DragState{SourceIndex: -1},
	}
}
