package tui_test

import (
	"strings"
	"testing"

	"github.com/tabgrid/tabgrid/internal/tui/layout"
)

func TestView_ShowsFolderCardsWithCounts(t *testing.T) {
	f := newAppFixture(t)
	f.app = f.app.WithDimensions(120, 40)

	view := layout.StripANSI(f.app.View())

	for _, want := range []string{"Dev (2)", "News (1)", "Alpha", "Beta", "Gamma"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestView_EmptyGrid(t *testing.T) {
	f := newAppFixture(t)
	f.grid.Update(nil, false)
	f.app = f.app.WithDimensions(80, 24)

	view := layout.StripANSI(f.app.View())
	if !strings.Contains(view, "No folders yet") {
		t.Error("expected empty-state message")
	}
}

func TestView_EditBadge(t *testing.T) {
	f := newAppFixture(t)
	f.app = f.app.WithDimensions(80, 24)

	view := layout.StripANSI(f.app.View())
	if strings.Contains(view, "EDIT") {
		t.Error("edit badge must be hidden outside edit mode")
	}

	f.press(t, "e")
	view = layout.StripANSI(f.app.View())
	if !strings.Contains(view, "EDIT") {
		t.Error("expected edit badge in edit mode")
	}
}

func TestView_ConfirmModalShowsPrompt(t *testing.T) {
	f := newAppFixture(t)
	f.app = f.app.WithDimensions(80, 24)

	f.press(t, "e", "D")
	// The modal wraps the prompt, so match on a fragment that fits one line.
	view := layout.StripANSI(f.app.View())
	if !strings.Contains(view, `Delete folder "Dev"`) {
		t.Errorf("expected confirmation prompt, got:\n%s", view)
	}
	if !strings.Contains(view, "bookmarks?") {
		t.Errorf("expected bookmark count in prompt, got:\n%s", view)
	}
}

func TestView_StatusLine(t *testing.T) {
	f := newAppFixture(t)
	f.app = f.app.WithDimensions(80, 24)

	f.status.Success("Folder order saved")
	view := layout.StripANSI(f.app.View())
	if !strings.Contains(view, "Folder order saved") {
		t.Error("expected status message in view")
	}
}

func TestView_SearchResultBadge(t *testing.T) {
	f := newAppFixture(t)
	f.app = f.app.WithDimensions(80, 24)

	f.press(t, "/", "A", "l", "p", "h", "a", "esc")
	// Search cleared on esc; run a filtered render directly.
	f.press(t, "/")
	view := layout.StripANSI(f.app.View())
	if !strings.Contains(view, "SEARCH") {
		t.Error("expected search badge while searching")
	}
}

func TestView_HelpScreen(t *testing.T) {
	f := newAppFixture(t)
	f.app = f.app.WithDimensions(80, 24)

	f.press(t, "?")
	view := layout.StripANSI(f.app.View())
	if !strings.Contains(view, "toggle edit mode") {
		t.Error("expected key reference in help view")
	}
}
