package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() []Hint {
	switch a.mode {
	case ModeSearch:
		return []Hint{
			{Key: "type", Desc: "search"},
			{Key: "Enter", Desc: "open first"},
			{Key: "Esc", Desc: "cancel"},
		}
	case ModeAddFolder, ModeRename:
		return []Hint{
			{Key: "Enter", Desc: "save"},
			{Key: "Esc", Desc: "cancel"},
		}
	case ModeConfirmDelete:
		return []Hint{
			{Key: "y", Desc: "delete"},
			{Key: "n/Esc", Desc: "cancel"},
		}
	case ModeMoveLink:
		return []Hint{
			{Key: "j/k", Desc: "position"},
			{Key: "h/l", Desc: "folder"},
			{Key: "Enter", Desc: "drop"},
			{Key: "Esc", Desc: "cancel"},
		}
	case ModeMoveFolder:
		return []Hint{
			{Key: "h/l", Desc: "move card"},
			{Key: "Enter", Desc: "drop"},
			{Key: "Esc", Desc: "cancel"},
		}
	case ModeHelp:
		return []Hint{
			{Key: "?/q/Esc", Desc: "close"},
		}
	}

	if a.state.EditMode {
		return []Hint{
			{Key: "j/k h/l", Desc: "move"},
			{Key: "a", Desc: "add folder"},
			{Key: "r/R", Desc: "rename"},
			{Key: "d/D", Desc: "delete"},
			{Key: "m/M", Desc: "grab"},
			{Key: "e", Desc: "done"},
			{Key: "?", Desc: "help"},
		}
	}
	return []Hint{
		{Key: "j/k h/l", Desc: "move"},
		{Key: "Enter", Desc: "open"},
		{Key: "y", Desc: "yank"},
		{Key: "/", Desc: "search"},
		{Key: "e", Desc: "edit"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}
