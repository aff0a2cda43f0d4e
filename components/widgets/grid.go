package widgets

import (
	"strconv"
	"strings"
)

const (
	// maxAutoDesktopColumns caps the auto-derived desktop column count.
	maxAutoDesktopColumns = 6
	// maxExplicitColumns bounds caller supplied column counts.
	maxExplicitColumns = 12
)

// Columns holds the responsive column counts per breakpoint.
type Columns struct {
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
	Desktop int `json:"desktop"`
}

// GridLayout is the resolved layout for a grid container.
type GridLayout struct {
	Columns
	Spacing Spacing `json:"spacing"`
	Align   Align   `json:"align"`
}

var staticColumns = Columns{Mobile: 1, Tablet: 2, Desktop: 3}

// AutoColumns derives column counts from the number of items.
func AutoColumns(count int) Columns {
	switch {
	case count <= 1:
		return Columns{Mobile: 1, Tablet: 1, Desktop: 1}
	case count == 2:
		return Columns{Mobile: 1, Tablet: 2, Desktop: 2}
	case count == 3:
		return Columns{Mobile: 1, Tablet: 2, Desktop: 3}
	case count == 4:
		return Columns{Mobile: 1, Tablet: 2, Desktop: 4}
	case count <= 6:
		return Columns{Mobile: 2, Tablet: 3, Desktop: 3}
	case count <= 8:
		return Columns{Mobile: 2, Tablet: 3, Desktop: 4}
	default:
		return Columns{Mobile: 2, Tablet: 4, Desktop: maxAutoDesktopColumns}
	}
}

// ResolveColumns returns the auto-derived columns for count with any explicit
// grid values applied field by field. When grid.Auto is explicitly false the
// static {1,2,3} base is used instead of the item-count table.
func ResolveColumns(count int, grid *GridConfig) Columns {
	if grid == nil {
		return AutoColumns(count)
	}
	cols := AutoColumns(count)
	if grid.Auto != nil && !*grid.Auto {
		cols = staticColumns
	}
	if v, ok := explicitColumns(grid.Mobile); ok {
		cols.Mobile = v
	}
	if v, ok := explicitColumns(grid.Tablet); ok {
		cols.Tablet = v
	}
	if v, ok := explicitColumns(grid.Desktop); ok {
		cols.Desktop = v
	}
	return cols
}

// ResolveLayout resolves columns plus spacing and alignment defaults.
func ResolveLayout(count int, grid *GridConfig) GridLayout {
	layout := GridLayout{
		Columns: ResolveColumns(count, grid),
		Spacing: SpacingMedium,
		Align:   AlignStretch,
	}
	if grid != nil {
		layout.Spacing = normalizeSpacing(grid.Spacing)
		layout.Align = normalizeAlign(grid.Align)
	}
	return layout
}

func explicitColumns(value int) (int, bool) {
	if value <= 0 {
		return 0, false
	}
	if value > maxExplicitColumns {
		return maxExplicitColumns, true
	}
	return value, true
}

func normalizeSpacing(s Spacing) Spacing {
	switch Spacing(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SpacingNone:
		return SpacingNone
	case SpacingSmall:
		return SpacingSmall
	case SpacingLarge:
		return SpacingLarge
	default:
		return SpacingMedium
	}
}

func normalizeAlign(a Align) Align {
	switch Align(strings.ToLower(strings.TrimSpace(string(a)))) {
	case AlignStart:
		return AlignStart
	case AlignCenter:
		return AlignCenter
	case AlignEnd:
		return AlignEnd
	default:
		return AlignStretch
	}
}

// ItemKey returns the item's own id when it has one, else its index.
func ItemKey(item any, index int) string {
	if id := strings.TrimSpace(itemID(item)); id != "" {
		return id
	}
	return strconv.Itoa(index)
}

// IntelligentGrid lays items out in a responsive grid, calling renderItem once
// per item in input order. A nil result from renderItem leaves an empty cell.
func IntelligentGrid[T any](items []T, grid *GridConfig, renderItem func(item T, index int) *Node) *Node {
	layout := ResolveLayout(len(items), grid)
	container := &Node{
		Kind:      KindGrid,
		Component: ComponentGrid,
		Layout:    &layout,
		Children:  make([]*Node, 0, len(items)),
	}
	for idx, item := range items {
		cell := &Node{
			Kind: KindCell,
			Key:  ItemKey(item, idx),
		}
		if renderItem != nil {
			if child := renderItem(item, idx); child != nil {
				child.Key = cell.Key
				cell.Children = []*Node{child}
			}
		}
		container.Children = append(container.Children, cell)
	}
	return container
}
