package widgets

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoColumnsTable(t *testing.T) {
	tests := []struct {
		count int
		want  Columns
	}{
		{count: -3, want: Columns{1, 1, 1}},
		{count: 0, want: Columns{1, 1, 1}},
		{count: 1, want: Columns{1, 1, 1}},
		{count: 2, want: Columns{1, 2, 2}},
		{count: 3, want: Columns{1, 2, 3}},
		{count: 4, want: Columns{1, 2, 4}},
		{count: 5, want: Columns{2, 3, 3}},
		{count: 6, want: Columns{2, 3, 3}},
		{count: 7, want: Columns{2, 3, 4}},
		{count: 8, want: Columns{2, 3, 4}},
		{count: 9, want: Columns{2, 4, 6}},
		{count: 100, want: Columns{2, 4, 6}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, AutoColumns(tt.count)); diff != "" {
			t.Fatalf("AutoColumns(%d) mismatch (-want +got):\n%s", tt.count, diff)
		}
	}
}

func TestAutoColumnsBounds(t *testing.T) {
	for count := 0; count <= 50; count++ {
		cols := AutoColumns(count)
		if cols.Mobile < 1 || cols.Mobile > cols.Tablet || cols.Tablet > cols.Desktop || cols.Desktop > maxAutoDesktopColumns {
			t.Fatalf("AutoColumns(%d) = %+v breaks ordering", count, cols)
		}
		if count >= 1 && cols.Desktop > count {
			t.Fatalf("AutoColumns(%d) desktop %d exceeds item count", count, cols.Desktop)
		}
	}
}

func TestResolveColumnsOverrides(t *testing.T) {
	off := false
	tests := []struct {
		name  string
		count int
		grid  *GridConfig
		want  Columns
	}{
		{name: "nil grid", count: 5, want: Columns{2, 3, 3}},
		{name: "explicit field wins", count: 2, grid: &GridConfig{Desktop: 5}, want: Columns{1, 2, 5}},
		{name: "zero is unset", count: 7, grid: &GridConfig{Mobile: 0, Tablet: -1}, want: Columns{2, 3, 4}},
		{name: "clamped", count: 1, grid: &GridConfig{Desktop: 40}, want: Columns{1, 1, 12}},
		{name: "auto off uses static base", count: 9, grid: &GridConfig{Auto: &off}, want: Columns{1, 2, 3}},
		{name: "auto off with override", count: 9, grid: &GridConfig{Auto: &off, Mobile: 2}, want: Columns{2, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColumns(tt.count, tt.grid))
		})
	}
}

func TestResolveLayoutDefaults(t *testing.T) {
	layout := ResolveLayout(3, nil)
	assert.Equal(t, SpacingMedium, layout.Spacing)
	assert.Equal(t, AlignStretch, layout.Align)

	layout = ResolveLayout(3, &GridConfig{Spacing: "LG", Align: "bogus"})
	assert.Equal(t, SpacingLarge, layout.Spacing)
	assert.Equal(t, AlignStretch, layout.Align)
}

type keyed struct {
	Identity
	Label string
}

func TestIntelligentGridCallsRendererOncePerItemInOrder(t *testing.T) {
	items := []keyed{
		{Identity: Identity{ID: "a"}, Label: "first"},
		{Label: "second"},
		{Identity: Identity{ID: "c"}, Label: "third"},
	}
	var seen []int
	node := IntelligentGrid(items, nil, func(item keyed, idx int) *Node {
		seen = append(seen, idx)
		if idx == 1 {
			return nil
		}
		return &Node{Kind: KindWidget, Markup: "<p>" + item.Label + "</p>"}
	})

	assert.Equal(t, []int{0, 1, 2}, seen)
	require.Len(t, node.Children, 3)
	assert.Equal(t, "a", node.Children[0].Key)
	assert.Equal(t, "1", node.Children[1].Key)
	assert.Equal(t, "c", node.Children[2].Key)
	assert.Empty(t, node.Children[1].Children, "nil render leaves an empty cell")
	assert.Equal(t, "a", node.Children[0].Children[0].Key)

	html := node.HTML()
	assert.Contains(t, html, `data-component="IntelligentGrid"`)
	assert.Contains(t, html, `data-columns="1/2/3"`)
	assert.True(t, strings.Index(html, "first") < strings.Index(html, "third"))
}

func TestIntelligentGridEmpty(t *testing.T) {
	calls := 0
	node := IntelligentGrid([]keyed{}, nil, func(keyed, int) *Node {
		calls++
		return nil
	})
	assert.Zero(t, calls)
	assert.Empty(t, node.Children)
	assert.Equal(t, Columns{1, 1, 1}, node.Layout.Columns)
}

func TestGridHTMLClasses(t *testing.T) {
	node := IntelligentGrid([]int{1, 2, 3, 4}, &GridConfig{Spacing: SpacingNone, Align: AlignCenter}, func(int, int) *Node { return nil })
	node.ClassName = `extra "bad`
	html := node.HTML()
	assert.Contains(t, html, "grid-cols-1 md:grid-cols-2 lg:grid-cols-4 gap-0 items-center extra")
	assert.NotContains(t, html, `"bad`)
}

func TestItemKey(t *testing.T) {
	assert.Equal(t, "x", ItemKey(keyed{Identity: Identity{ID: " x "}}, 4))
	assert.Equal(t, "4", ItemKey(keyed{}, 4))
	assert.Equal(t, "2", ItemKey(7, 2))
}
