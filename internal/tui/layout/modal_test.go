package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"clamped to minimum", 80, cfg.MinWidth},
		{"percentage of wide terminal", 160, 64},
		{"clamped to maximum", 300, cfg.MaxWidth},
		{"narrow terminal caps at width-4", 30, 26},
		{"degenerate terminal", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateModalWidth(tt.width, cfg); got != tt.want {
				t.Errorf("expected %d for terminal %d, got %d", tt.want, tt.width, got)
			}
		})
	}
}
