package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tabgrid/tabgrid/internal/model"
	"github.com/tabgrid/tabgrid/internal/session"
	"github.com/tabgrid/tabgrid/internal/tui/layout"
)

// renderView draws the whole screen for the current mode.
func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.styles.App.Render(a.renderHelp())
	}

	var sections []string
	sections = append(sections, a.renderHeader())

	switch a.mode {
	case ModeAddFolder:
		sections = append(sections, a.renderInputModal("New folder"))
	case ModeRename:
		title := "Rename link"
		if a.renameFolder {
			title = "Rename folder"
		}
		sections = append(sections, a.renderInputModal(title))
	case ModeConfirmDelete:
		sections = append(sections, a.renderConfirmModal())
	default:
		sections = append(sections, a.renderGrid())
	}

	sections = append(sections, a.renderStatus())
	sections = append(sections, a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.styles.App.Render(strings.Join(sections, "\n"))
}

// renderHeader draws the title row with mode badges and the search input.
func (a App) renderHeader() string {
	parts := []string{a.styles.Title.Render("tabgrid")}

	if a.state.EditMode {
		parts = append(parts, a.styles.EditBadge.Render("EDIT"))
	}
	if a.mode == ModeSearch {
		parts = append(parts, a.styles.SearchBadge.Render("SEARCH"), a.searchInput.View())
	} else if a.grid.SearchResult {
		parts = append(parts, a.styles.SearchBadge.Render("FILTERED"))
	}

	return strings.Join(parts, " ")
}

// renderGrid draws the folder cards in columns.
func (a App) renderGrid() string {
	folders := a.displayFolders()
	if len(folders) == 0 {
		if a.grid.SearchResult {
			return a.styles.Empty.Render("No matches")
		}
		return a.styles.Empty.Render("No folders yet. Press e then a to create one.")
	}

	gl := layout.CalculateGrid(a.width-4, a.cfg.Grid)

	var rows []string
	for start := 0; start < len(folders); start += gl.Columns {
		end := start + gl.Columns
		if end > len(folders) {
			end = len(folders)
		}

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, a.renderCard(folders[i], i, gl.CardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return strings.Join(rows, "\n")
}

// displayFolders returns the folders in display order, honoring an in-flight
// card grab.
func (a App) displayFolders() []model.Folder {
	if a.mode != ModeMoveFolder || a.dragOrder == nil {
		return a.grid.Folders
	}

	byID := make(map[string]model.Folder, len(a.grid.Folders))
	for _, f := range a.grid.Folders {
		byID[f.Info.ID] = f
	}
	ordered := make([]model.Folder, 0, len(a.dragOrder))
	for _, id := range a.dragOrder {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// renderCard draws one folder card.
func (a App) renderCard(f model.Folder, index, cardWidth int) string {
	focused := index == a.folderCursor
	grabbed := a.state.Drag.Kind == session.DragFolder && a.state.Drag.ID == f.Info.ID
	contentWidth := layout.CalculateCardContentWidth(cardWidth, a.cfg.Grid)

	var lines []string

	title, _ := layout.TruncateWithPrefixSuffix(
		f.Info.Title, contentWidth, "", fmt.Sprintf(" (%d)", len(f.Links)), a.cfg.Text)
	lines = append(lines, a.styles.CardTitle.Render(title))
	lines = append(lines, a.styles.Count.Render(strings.Repeat("─", contentWidth)))

	if len(f.Links) == 0 {
		lines = append(lines, a.styles.Empty.Render("(empty)"))
	} else {
		cursor := 0
		if focused {
			cursor = a.linkCursor
		}
		start, end := layout.CalculateVisibleListItems(a.cfg.Grid.MaxLinksPerCard, cursor, len(f.Links))
		for i := start; i < end; i++ {
			lines = append(lines, a.renderLink(f, i, focused, contentWidth))
		}
		if end < len(f.Links) {
			lines = append(lines, a.styles.Count.Render(fmt.Sprintf("+%d more", len(f.Links)-end)))
		}
	}

	card := a.styles.Card
	if grabbed {
		card = a.styles.CardGrabbed
	} else if focused {
		card = a.styles.CardActive
	}
	return card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// renderLink draws one link row inside a card.
func (a App) renderLink(f model.Folder, index int, focused bool, contentWidth int) string {
	link := f.Links[index]
	text, _ := layout.TruncateText(link.Title, contentWidth, a.cfg.Text)

	if a.state.Drag.Kind == session.DragBookmark && a.state.Drag.ID == link.ID {
		return a.styles.LinkGrabbed.Render(text)
	}
	if focused && index == a.linkCursor && a.mode != ModeMoveFolder {
		return a.styles.LinkSelected.Render(text)
	}
	return a.styles.Link.Render(text)
}

// renderStatus draws the status line.
func (a App) renderStatus() string {
	if a.status.Message == "" {
		return ""
	}
	if a.status.IsError {
		return a.styles.StatusError.Render(a.status.Message)
	}
	return a.styles.Status.Render(a.status.Message)
}

// renderInputModal draws the title input for add and rename.
func (a App) renderInputModal(title string) string {
	width := layout.CalculateModalWidth(a.width, a.cfg.Modal)
	content := a.styles.Title.Render(title) + "\n\n" + a.titleInput.View()
	return a.styles.ModalBox.Width(width).Render(content)
}

// renderConfirmModal draws the delete confirmation prompt.
func (a App) renderConfirmModal() string {
	width := layout.CalculateModalWidth(a.width, a.cfg.Modal)
	content := a.pendingPrompt + "\n\n" +
		a.styles.HintKey.Render("y") + " " + a.styles.HintDesc.Render("delete") + "   " +
		a.styles.HintKey.Render("n") + " " + a.styles.HintDesc.Render("cancel")
	return a.styles.ModalBox.Width(width).Render(content)
}

// renderHelp draws the full key reference.
func (a App) renderHelp() string {
	rows := []struct {
		key, desc string
	}{
		{"j/k", "move between links"},
		{"h/l", "move between folders"},
		{"gg / G", "first / last link"},
		{"Enter / o", "open link"},
		{"y", "copy link URL"},
		{"/", "search all folders"},
		{"ctrl+r", "refresh from storage"},
		{"e", "toggle edit mode"},
		{"a", "add folder (edit mode)"},
		{"r / R", "rename link / folder (edit mode)"},
		{"d / D", "delete link / folder (edit mode)"},
		{"m / M", "grab link / folder (edit mode)"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			a.styles.HintKey.Render(fmt.Sprintf("%-10s", r.key)),
			a.styles.HintDesc.Render(r.desc)))
	}
	return b.String()
}
