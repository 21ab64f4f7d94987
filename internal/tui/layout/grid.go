package layout

// GridLayout holds calculated grid dimensions.
type GridLayout struct {
	Columns   int
	CardWidth int
}

// CalculateGrid computes how many card columns fit the terminal and how wide
// each card gets. Cards share leftover space up to CardWidth.
func CalculateGrid(terminalWidth int, cfg GridConfig) GridLayout {
	usable := terminalWidth - cfg.Gutter
	if usable < cfg.MinCardWidth {
		return GridLayout{Columns: 1, CardWidth: cfg.MinCardWidth}
	}

	columns := usable / (cfg.MinCardWidth + cfg.Gutter)
	if columns < 1 {
		columns = 1
	}
	if columns > cfg.MaxColumns {
		columns = cfg.MaxColumns
	}

	cardWidth := usable/columns - cfg.Gutter
	if cardWidth > cfg.CardWidth {
		cardWidth = cfg.CardWidth
	}
	if cardWidth < cfg.MinCardWidth {
		cardWidth = cfg.MinCardWidth
	}

	return GridLayout{Columns: columns, CardWidth: cardWidth}
}

// CalculateGridHeight computes the content height for the grid area.
// Returns at least MinHeight.
func CalculateGridHeight(terminalHeight int, cfg GridConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateCardContentWidth computes the width available for link rows.
func CalculateCardContentWidth(cardWidth int, cfg GridConfig) int {
	width := cardWidth - cfg.CardContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateVisibleListItems computes the start and end indices for a
// scrollable list. Returns (start, end) where items[start:end] should be
// displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
