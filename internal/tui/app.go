// Package tui renders the bookmark grid and drives the edit coordinator from
// key input.
package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabgrid/tabgrid/internal/edit"
	"github.com/tabgrid/tabgrid/internal/model"
	"github.com/tabgrid/tabgrid/internal/session"
	"github.com/tabgrid/tabgrid/internal/tui/layout"
)

// Mode identifies the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAddFolder
	ModeRename
	ModeConfirmDelete
	ModeMoveLink
	ModeMoveFolder
	ModeHelp
)

// App is the main bubbletea model for the bookmark grid.
type App struct {
	coord   *edit.Coordinator
	state   *session.State
	grid    *Grid
	gate    *ConfirmGate
	status  *StatusLine
	openURL func(string) error

	keys   KeyMap
	styles Styles
	cfg    layout.Config

	mode Mode

	// Grid cursors. linkCursor is clamped to the focused folder's links.
	folderCursor int
	linkCursor   int

	searchInput textinput.Model
	titleInput  textinput.Model

	// Rename target, set when entering ModeRename.
	renameID     string
	renameTitle  string
	renameFolder bool

	// Folder pending deletion, set when entering ModeConfirmDelete.
	pendingDeleteID string
	pendingPrompt   string

	// Working folder order while a card is grabbed.
	dragOrder []string

	// For the gg command.
	lastKeyWasG bool

	width  int
	height int
}

// Params holds the collaborators an App needs. Grid, Gate and Status must be
// the same values wired into the coordinator.
type Params struct {
	Coordinator *edit.Coordinator
	State       *session.State
	Grid        *Grid
	Gate        *ConfirmGate
	Status      *StatusLine
	OpenURL     func(string) error

	Keys   *KeyMap        // optional, uses default if nil
	Styles *Styles        // optional, uses default if nil
	Layout *layout.Config // optional, uses default if nil
}

// NewApp creates a new App.
func NewApp(params Params) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.Layout != nil {
		cfg = *params.Layout
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = cfg.Input.SearchCharLimit
	searchInput.Width = cfg.Input.SearchWidth

	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	return App{
		coord:       params.Coordinator,
		state:       params.State,
		grid:        params.Grid,
		gate:        params.Gate,
		status:      params.Status,
		openURL:     params.OpenURL,
		keys:        keys,
		styles:      styles,
		cfg:         cfg,
		searchInput: searchInput,
		titleInput:  titleInput,
		width:       80,
		height:      24,
	}
}

// WithDimensions returns a copy of the app with fixed dimensions. Used by
// tests for deterministic output.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// FolderCursor returns the focused folder index.
func (a App) FolderCursor() int {
	return a.folderCursor
}

// LinkCursor returns the focused link index within the focused folder.
func (a App) LinkCursor() int {
	return a.linkCursor
}

// EditMode reports whether structural edit keys are active.
func (a App) EditMode() bool {
	return a.state.EditMode
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeAddFolder, ModeRename:
			return a.updateTitleInput(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeMoveLink:
			return a.updateMoveLink(msg)
		case ModeMoveFolder:
			return a.updateMoveFolder(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence.
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.linkCursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Down):
		if f := a.focusedFolder(); f != nil && a.linkCursor < len(f.Links)-1 {
			a.linkCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.linkCursor > 0 {
			a.linkCursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if f := a.focusedFolder(); f != nil && len(f.Links) > 0 {
			a.linkCursor = len(f.Links) - 1
		}

	case key.Matches(msg, a.keys.Right):
		if a.folderCursor < len(a.grid.Folders)-1 {
			a.folderCursor++
			a.clampLinkCursor()
		}

	case key.Matches(msg, a.keys.Left):
		if a.folderCursor > 0 {
			a.folderCursor--
			a.clampLinkCursor()
		}

	case key.Matches(msg, a.keys.Open):
		a.openFocusedLink()

	case key.Matches(msg, a.keys.YankURL):
		a.yankFocusedLink()

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.searchInput.Reset()
		a.searchInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Refresh):
		a.coord.Refresh()
		a.clampCursors()

	case key.Matches(msg, a.keys.ToggleEdit):
		a.state.EditMode = !a.state.EditMode

	case key.Matches(msg, a.keys.AddFolder):
		if !a.state.EditMode {
			break
		}
		a.mode = ModeAddFolder
		a.titleInput.Reset()
		a.titleInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Rename):
		if !a.state.EditMode {
			break
		}
		f := a.focusedFolder()
		if f == nil || a.linkCursor >= len(f.Links) {
			break
		}
		link := f.Links[a.linkCursor]
		a.renameID = link.ID
		a.renameTitle = link.Title
		a.renameFolder = false
		a.mode = ModeRename
		a.titleInput.SetValue(link.Title)
		a.titleInput.CursorEnd()
		a.titleInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.RenameFolder):
		if !a.state.EditMode {
			break
		}
		f := a.focusedFolder()
		if f == nil {
			break
		}
		a.renameID = f.Info.ID
		a.renameTitle = f.Info.Title
		a.renameFolder = true
		a.mode = ModeRename
		a.titleInput.SetValue(f.Info.Title)
		a.titleInput.CursorEnd()
		a.titleInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Delete):
		if !a.state.EditMode {
			break
		}
		f := a.focusedFolder()
		if f == nil || a.linkCursor >= len(f.Links) {
			break
		}
		a.coord.DeleteBookmark(f.Info.ID, f.Links[a.linkCursor].ID)
		a.clampCursors()

	case key.Matches(msg, a.keys.DeleteFolder):
		if !a.state.EditMode {
			break
		}
		f := a.focusedFolder()
		if f == nil {
			break
		}
		a.pendingDeleteID = f.Info.ID
		a.pendingPrompt = fmt.Sprintf("Delete folder %q and its %d bookmarks?", f.Info.Title, len(f.Links))
		a.mode = ModeConfirmDelete

	case key.Matches(msg, a.keys.Grab):
		if !a.state.EditMode {
			break
		}
		f := a.focusedFolder()
		if f == nil || a.linkCursor >= len(f.Links) {
			break
		}
		a.state.Drag = session.DragState{
			Kind:           session.DragBookmark,
			ID:             f.Links[a.linkCursor].ID,
			SourceFolderID: f.Info.ID,
			TargetFolderID: f.Info.ID,
			SourceIndex:    a.linkCursor,
		}
		a.mode = ModeMoveLink

	case key.Matches(msg, a.keys.GrabFolder):
		if !a.state.EditMode {
			break
		}
		f := a.focusedFolder()
		if f == nil {
			break
		}
		a.state.Drag = session.DragState{
			Kind:        session.DragFolder,
			ID:          f.Info.ID,
			SourceIndex: a.folderCursor,
		}
		a.dragOrder = a.currentFolderIDs()
		a.mode = ModeMoveFolder
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.searchInput.Blur()
		a.coord.Search("")
		a.clampCursors()
		return a, nil

	case tea.KeyEnter:
		// Open the best match: first link of the first folder shown.
		if a.grid.SearchResult && len(a.grid.Folders) > 0 && len(a.grid.Folders[0].Links) > 0 {
			a.open(a.grid.Folders[0].Links[0].URL)
		}
		a.mode = ModeNormal
		a.searchInput.Blur()
		a.coord.Search("")
		a.clampCursors()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.coord.Search(a.searchInput.Value())
	a.folderCursor = 0
	a.linkCursor = 0
	return a, cmd
}

func (a App) updateTitleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.titleInput.Blur()
		return a, nil

	case tea.KeyEnter:
		value := a.titleInput.Value()
		var err error
		if a.mode == ModeAddFolder {
			err = a.coord.CreateFolder(value)
		} else {
			_, err = a.coord.Rename(a.renameID, a.renameTitle, value)
		}
		if err != nil {
			// The status line explains; the input stays up for another try.
			return a, nil
		}
		a.mode = ModeNormal
		a.titleInput.Blur()
		a.clampCursors()
		return a, nil
	}

	var cmd tea.Cmd
	a.titleInput, cmd = a.titleInput.Update(msg)
	return a, cmd
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.gate.Grant()
		a.coord.DeleteFolder(a.pendingDeleteID)
		a.mode = ModeNormal
		a.pendingDeleteID = ""
		a.pendingPrompt = ""
		a.clampCursors()
	case "n", "N", "esc", "q":
		a.mode = ModeNormal
		a.pendingDeleteID = ""
		a.pendingPrompt = ""
	}
	return a, nil
}

func (a App) updateMoveLink(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	drag := &a.state.Drag

	switch {
	case msg.Type == tea.KeyEsc:
		sourceID := drag.SourceFolderID
		sourceIdx := drag.SourceIndex
		a.state.Drag.Reset()
		a.mode = ModeNormal
		for i, f := range a.grid.Folders {
			if f.Info.ID == sourceID {
				a.folderCursor = i
				break
			}
		}
		a.linkCursor = sourceIdx
		a.clampCursors()
		return a, nil

	case msg.Type == tea.KeyEnter || msg.String() == " ":
		a.coord.MoveBookmark(drag.ID, drag.SourceFolderID, drag.TargetFolderID, drag.SourceIndex, a.linkCursor)
		a.state.Drag.Reset()
		a.mode = ModeNormal
		a.clampCursors()
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if f := a.focusedFolder(); f != nil && a.linkCursor < a.dropLimit(f.Info.ID, len(f.Links)) {
			a.linkCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.linkCursor > 0 {
			a.linkCursor--
		}

	case key.Matches(msg, a.keys.Right):
		if a.folderCursor < len(a.grid.Folders)-1 {
			a.folderCursor++
			drag.TargetFolderID = a.grid.Folders[a.folderCursor].Info.ID
			a.linkCursor = 0
		}

	case key.Matches(msg, a.keys.Left):
		if a.folderCursor > 0 {
			a.folderCursor--
			drag.TargetFolderID = a.grid.Folders[a.folderCursor].Info.ID
			a.linkCursor = 0
		}
	}

	return a, nil
}

// dropLimit is the highest index a grabbed link may take in the folder: one
// past the end when dropping into another folder, the last slot at home.
func (a App) dropLimit(folderID string, links int) int {
	if a.state.Drag.SourceFolderID == folderID {
		return links - 1
	}
	return links
}

func (a App) updateMoveFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		sourceIdx := a.state.Drag.SourceIndex
		a.state.Drag.Reset()
		a.dragOrder = nil
		a.folderCursor = sourceIdx
		a.mode = ModeNormal
		a.clampCursors()
		return a, nil

	case msg.Type == tea.KeyEnter || msg.String() == " ":
		order := a.dragOrder
		a.state.Drag.Reset()
		a.dragOrder = nil
		a.mode = ModeNormal
		a.coord.ReorderFolders(order)
		a.clampCursors()
		return a, nil

	case key.Matches(msg, a.keys.Right):
		if a.folderCursor < len(a.dragOrder)-1 {
			a.dragOrder[a.folderCursor], a.dragOrder[a.folderCursor+1] =
				a.dragOrder[a.folderCursor+1], a.dragOrder[a.folderCursor]
			a.folderCursor++
		}

	case key.Matches(msg, a.keys.Left):
		if a.folderCursor > 0 {
			a.dragOrder[a.folderCursor], a.dragOrder[a.folderCursor-1] =
				a.dragOrder[a.folderCursor-1], a.dragOrder[a.folderCursor]
			a.folderCursor--
		}
	}

	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "q", "esc", "enter":
		a.mode = ModeNormal
	}
	return a, nil
}

// focusedFolder returns the folder under the cursor, or nil.
func (a *App) focusedFolder() *model.Folder {
	if a.folderCursor < 0 || a.folderCursor >= len(a.grid.Folders) {
		return nil
	}
	return &a.grid.Folders[a.folderCursor]
}

func (a *App) openFocusedLink() {
	f := a.focusedFolder()
	if f == nil || a.linkCursor >= len(f.Links) {
		return
	}
	a.open(f.Links[a.linkCursor].URL)
}

func (a *App) open(url string) {
	if a.openURL == nil {
		return
	}
	if err := a.openURL(url); err != nil {
		a.status.Error("Failed to open link")
		return
	}
	a.status.Success("Opened " + url)
}

func (a *App) yankFocusedLink() {
	f := a.focusedFolder()
	if f == nil || a.linkCursor >= len(f.Links) {
		return
	}
	if err := clipboard.WriteAll(f.Links[a.linkCursor].URL); err != nil {
		a.status.Error("Clipboard unavailable")
		return
	}
	a.status.Success("URL copied")
}

// currentFolderIDs reads the displayed folder order.
func (a App) currentFolderIDs() []string {
	ids := make([]string, len(a.grid.Folders))
	for i, f := range a.grid.Folders {
		ids[i] = f.Info.ID
	}
	return ids
}

func (a *App) clampLinkCursor() {
	f := a.focusedFolder()
	if f == nil || len(f.Links) == 0 {
		a.linkCursor = 0
		return
	}
	if a.linkCursor >= len(f.Links) {
		a.linkCursor = len(f.Links) - 1
	}
}

func (a *App) clampCursors() {
	if len(a.grid.Folders) == 0 {
		a.folderCursor = 0
		a.linkCursor = 0
		return
	}
	if a.folderCursor >= len(a.grid.Folders) {
		a.folderCursor = len(a.grid.Folders) - 1
	}
	a.clampLinkCursor()
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
