package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello", "hello"},
		{"colored text", "\x1b[31mred\x1b[0m", "red"},
		{"multiple codes", "\x1b[1m\x1b[32mbold green\x1b[0m end", "bold green end"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	if got := VisibleLength("\x1b[31mabc\x1b[0m"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := VisibleLength("héllo"); got != 5 {
		t.Errorf("expected 5 runes, got %d", got)
	}
}

func TestTruncateText(t *testing.T) {
	cfg := TextConfig{Ellipsis: "..."}

	tests := []struct {
		name          string
		text          string
		maxWidth      int
		want          string
		wantTruncated bool
	}{
		{"fits exactly", "hello", 5, "hello", false},
		{"shorter than max", "hi", 10, "hi", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"width smaller than ellipsis", "hello", 2, "..", true},
		{"zero width", "hello", 0, "", true},
		{"unicode text", "日本語のテキスト", 5, "日本...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if truncated != tt.wantTruncated {
				t.Errorf("expected truncated=%v, got %v", tt.wantTruncated, truncated)
			}
		})
	}
}

func TestTruncateWithPrefixSuffix(t *testing.T) {
	cfg := TextConfig{Ellipsis: "..."}

	got, truncated := TruncateWithPrefixSuffix("Development", 20, "* ", " (3)", cfg)
	if truncated {
		t.Error("expected no truncation")
	}
	if got != "* Development (3)" {
		t.Errorf("unexpected result: %q", got)
	}

	got, truncated = TruncateWithPrefixSuffix("Development", 14, "* ", " (3)", cfg)
	if !truncated {
		t.Error("expected truncation")
	}
	if got != "* Devel... (3)" {
		t.Errorf("unexpected result: %q", got)
	}
}
