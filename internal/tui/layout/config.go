package layout

// Config holds all layout-related configuration values.
type Config struct {
	Grid  GridConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// GridConfig holds folder grid dimension configuration.
type GridConfig struct {
	// CardWidth is the preferred width of a folder card including borders.
	CardWidth int

	// MinCardWidth is the narrowest a card may get before a column is dropped.
	MinCardWidth int

	// MaxColumns caps the column count on wide terminals.
	MaxColumns int

	// Gutter is the space between adjacent cards.
	Gutter int

	// HeightReduction is subtracted from terminal height for grid content.
	// Accounts for: app padding (1) + header (1) + status line (1) + help bar (2)
	HeightReduction int

	// MinHeight is the minimum grid height.
	MinHeight int

	// CardHeaderLines accounts for the title and separator inside a card.
	CardHeaderLines int

	// MaxLinksPerCard is the number of link rows a card shows before scrolling.
	MaxLinksPerCard int

	// CardContentPadding is subtracted from card width for link rendering.
	CardContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as a percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	SearchCharLimit int

	StandardWidth int
	SearchWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			CardWidth:          34,
			MinCardWidth:       24,
			MaxColumns:         5,
			Gutter:             2,
			HeightReduction:    5,
			MinHeight:          6,
			CardHeaderLines:    2,
			MaxLinksPerCard:    8,
			CardContentPadding: 4,
		},
		Modal: ModalConfig{
			WidthPercent: 40,
			MinWidth:     40,
			MaxWidth:     72,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			SearchCharLimit: 100,
			StandardWidth:   40,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
