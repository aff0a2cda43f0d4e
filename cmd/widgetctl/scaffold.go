package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ettle/strcase"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-widgets/components/widgets"
)

type scaffoldCmd struct {
	Type      string `help:"Widget type to scaffold (prompted when omitted)."`
	Format    string `default:"yaml" enum:"json,yaml,toml" help:"Output format."`
	Out       string `type:"path" help:"Output file (defaults to <type>.<format> in the current directory)."`
	Batch     int    `help:"Scaffold an array of N payloads rendered inside a grid."`
	Overwrite bool   `help:"Overwrite an existing file."`
}

func (cmd *scaffoldCmd) Run() error {
	registry := widgets.NewRegistry()
	if cmd.Type == "" {
		choice, err := promptType(registry)
		if err != nil {
			return err
		}
		cmd.Type = choice
	}
	t := widgets.WidgetType(cmd.Type)
	if _, ok := registry.Descriptor(t); !ok {
		return fmt.Errorf("widgetctl: unknown widget type %q", cmd.Type)
	}
	format, err := widgets.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	data, err := scaffoldDocument(t, cmd.Batch, format)
	if err != nil {
		return err
	}
	path := cmd.Out
	if path == "" {
		path = strcase.ToKebab(cmd.Type) + "." + string(format)
	}
	if _, err := os.Stat(path); err == nil && !cmd.Overwrite {
		return fmt.Errorf("widgetctl: %s already exists (use --overwrite)", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("widgetctl: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("widgetctl: write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote %s starter config to %s\n", cmd.Type, path)
	return nil
}

func promptType(registry *widgets.Registry) (string, error) {
	types := registry.Types()
	options := make([]string, 0, len(types))
	for _, t := range types {
		options = append(options, string(t))
	}
	var choice string
	prompt := &survey.Select{
		Message: "Widget type:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", fmt.Errorf("widgetctl: prompt: %w", err)
	}
	return choice, nil
}

// scaffoldDocument encodes a starter config for t. With batch > 0 the data
// holds batch copies of the sample payload.
func scaffoldDocument(t widgets.WidgetType, batch int, format widgets.Format) ([]byte, error) {
	sample, ok := samplePayload(t)
	if !ok {
		return nil, fmt.Errorf("widgetctl: no sample for %q", t)
	}
	cfg := widgets.WidgetConfig{Type: t, Data: sample}
	if batch > 0 {
		items := make([]widgets.Payload, batch)
		for i := range items {
			items[i] = sample
		}
		cfg = widgets.WidgetConfig{Type: t, Items: items}
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("widgetctl: encode sample: %w", err)
	}
	if format == widgets.FormatJSON {
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	switch format {
	case widgets.FormatYAML:
		var out bytes.Buffer
		encoder := yaml.NewEncoder(&out)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("widgetctl: encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	case widgets.FormatTOML:
		out, err := toml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("widgetctl: encode toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("widgetctl: unsupported format %q", format)
	}
}

func samplePayload(t widgets.WidgetType) (widgets.Payload, bool) {
	rating := 4.5
	switch t {
	case widgets.TypeMetric:
		return widgets.MetricData{Label: "Active users", Value: "1,204", Trend: &widgets.Trend{Direction: "up", Value: "4%"}}, true
	case widgets.TypeInfo:
		return widgets.InfoData{Title: "Account", Items: []widgets.InfoItem{{Label: "Plan", Value: "Pro"}}}, true
	case widgets.TypeProduct:
		return widgets.ProductData{Name: "Sample product", Price: "19.99", Currency: "USD", Rating: &rating}, true
	case widgets.TypeOrder:
		return widgets.OrderData{OrderID: "1001", Status: "processing", Total: "42.00", Currency: "USD"}, true
	case widgets.TypeList:
		return widgets.ListData{Title: "Tasks", Items: []widgets.ListItem{{Title: "First item"}}}, true
	case widgets.TypeText:
		return widgets.TextData{Title: "About", Body: "<p>Write something here.</p>"}, true
	case widgets.TypeHeader:
		return widgets.HeaderData{Title: "Page title", Subtitle: "A short subtitle"}, true
	case widgets.TypeCarousel:
		return widgets.CarouselData{Slides: []widgets.Slide{{Title: "First slide"}, {Title: "Second slide"}}}, true
	case widgets.TypeTestimonial:
		return widgets.TestimonialData{Quote: "It just works.", Author: "A happy customer", Rating: &rating}, true
	case widgets.TypeGridCarousel:
		return widgets.GridCarouselData{Items: []widgets.GridCarouselItem{{Title: "One"}, {Title: "Two"}}}, true
	case widgets.TypeContentBlock:
		return widgets.ContentBlockData{Title: "Feature", Body: "<p>Describe the feature.</p>"}, true
	case widgets.TypeChart:
		return widgets.ChartData{
			ChartType: "bar",
			XAxis:     []string{"Q1", "Q2", "Q3"},
			Series:    []widgets.ChartSeries{{Name: "Revenue", Data: []float64{10, 20, 30}}},
		}, true
	default:
		return nil, false
	}
}
