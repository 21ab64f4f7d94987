package tui

import "github.com/tabgrid/tabgrid/internal/model"

// Grid is the render sink the coordinator writes to. Its Update method
// satisfies the coordinator's render callback.
type Grid struct {
	Folders      []model.Folder
	SearchResult bool
}

// Update replaces the displayed folders.
func (g *Grid) Update(folders []model.Folder, searchResult bool) {
	g.Folders = folders
	g.SearchResult = searchResult
}

// StatusLine collects coordinator notifications for the status bar.
type StatusLine struct {
	Message string
	IsError bool
}

// Success implements the coordinator's notifier.
func (s *StatusLine) Success(msg string) {
	s.Message = msg
	s.IsError = false
}

// Error implements the coordinator's notifier.
func (s *StatusLine) Error(msg string) {
	s.Message = msg
	s.IsError = true
}

// Clear empties the status bar.
func (s *StatusLine) Clear() {
	s.Message = ""
	s.IsError = false
}

// ConfirmGate answers the coordinator's confirmation prompt with a verdict
// the UI collected beforehand. The modal asks the user, grants the gate, and
// only then invokes the destructive operation. The grant is consumed by the
// next Confirm call.
type ConfirmGate struct {
	granted bool
}

// Grant records a positive answer for the next confirmation.
func (g *ConfirmGate) Grant() {
	g.granted = true
}

// Confirm implements the coordinator's confirmer.
func (g *ConfirmGate) Confirm(string) bool {
	ok := g.granted
	g.granted = false
	return ok
}
