package edit

import "github.com/tabgrid/tabgrid/internal/model"

// Notifier posts fire-and-forget user notices. The TUI shows them in the
// status line; tests record them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks a yes/no question before a destructive change.
type Confirmer interface {
	Confirm(prompt string) bool
}

// RenderFunc receives the ordered folders whenever the grid changes.
// searchResult is true when the folders are a filtered search view.
type RenderFunc func(folders []model.Folder, searchResult bool)
