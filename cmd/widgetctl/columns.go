package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-widgets/components/widgets"
)

type columnsCmd struct {
	Count   int    `required:"" help:"Number of grid items."`
	Mobile  int    `help:"Explicit mobile columns (0 keeps the derived value)."`
	Tablet  int    `help:"Explicit tablet columns."`
	Desktop int    `help:"Explicit desktop columns."`
	NoAuto  bool   `name:"no-auto" help:"Start from the static 1/2/3 layout instead of the item-count table."`
	Spacing string `help:"Gap hint (none, sm, md, lg)."`
	Align   string `help:"Alignment hint (start, center, end, stretch)."`
}

func (cmd *columnsCmd) Run() error {
	return cmd.print(os.Stdout)
}

func (cmd *columnsCmd) print(out io.Writer) error {
	if cmd.Count < 0 {
		return fmt.Errorf("widgetctl: count must be non-negative, got %d", cmd.Count)
	}
	grid := &widgets.GridConfig{
		Mobile:  cmd.Mobile,
		Tablet:  cmd.Tablet,
		Desktop: cmd.Desktop,
		Spacing: widgets.Spacing(cmd.Spacing),
		Align:   widgets.Align(cmd.Align),
	}
	if cmd.NoAuto {
		auto := false
		grid.Auto = &auto
	}
	layout := widgets.ResolveLayout(cmd.Count, grid)
	_, err := fmt.Fprintf(out, "mobile=%d tablet=%d desktop=%d spacing=%s align=%s\n",
		layout.Mobile, layout.Tablet, layout.Desktop, layout.Spacing, layout.Align)
	return err
}
