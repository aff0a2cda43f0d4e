package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-widgets/components/widgets"
)

type typesCmd struct {
	JSON bool `help:"Print descriptors with their JSON schemas."`
}

type typeEntry struct {
	Type      widgets.WidgetType `json:"type"`
	Component string             `json:"component"`
	Schema    map[string]any     `json:"schema,omitempty"`
}

func (cmd *typesCmd) Run() error {
	return cmd.print(os.Stdout, widgets.NewRegistry())
}

func (cmd *typesCmd) print(out io.Writer, registry *widgets.Registry) error {
	descs := registry.Descriptors()
	if cmd.JSON {
		entries := make([]typeEntry, 0, len(descs))
		for _, desc := range descs {
			entries = append(entries, typeEntry{Type: desc.Type, Component: desc.Component, Schema: desc.Schema})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCOMPONENT")
	for _, desc := range descs {
		fmt.Fprintf(tw, "%s\t%s\n", desc.Type, desc.Component)
	}
	return tw.Flush()
}
