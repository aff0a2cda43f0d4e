package widgets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// DefaultChartAssetsHost serves the ECharts runtime when no host is configured.
const DefaultChartAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer renders ChartData through go-echarts.
type ChartRenderer struct {
	cache      RenderCache
	assetsHost string
	themes     map[Theme]string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache. Nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the host the ECharts runtime loads from.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		if host = strings.TrimSpace(host); host != "" {
			if !strings.HasSuffix(host, "/") {
				host += "/"
			}
			r.assetsHost = host
		}
	}
}

// WithChartTheme maps a widget theme onto an ECharts theme name.
func WithChartTheme(theme Theme, echartsTheme string) ChartOption {
	return func(r *ChartRenderer) {
		r.themes[theme.Normalize()] = echartsTheme
	}
}

// NewChartRenderer builds a chart renderer using the shared cache.
func NewChartRenderer(options ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:      sharedChartCache,
		assetsHost: DefaultChartAssetsHost,
		themes: map[Theme]string{
			ThemeDefault:      types.ThemeWesteros,
			ThemeMinimal:      types.ThemeWalden,
			ThemeModern:       types.ThemeMacarons,
			ThemeProfessional: types.ThemeRoma,
			ThemeCompact:      types.ThemeShine,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render implements Renderer.
func (r *ChartRenderer) Render(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[ChartData](in)
	if err != nil {
		return err
	}
	if len(data.Series) == 0 {
		return errors.New("widgets: chart series is required")
	}
	chartType := strings.ToLower(strings.TrimSpace(data.ChartType))
	if chartType == "" {
		chartType = "bar"
	}
	theme := r.themes[in.Theme]
	if theme == "" {
		theme = types.ThemeWesteros
	}
	hash := contentHash(chartIdentity{Data: data, Size: in.Size, Key: in.Key})
	key := fmt.Sprintf("%s:%s:%s", chartType, theme, hash)

	renderFn := func() (string, error) {
		return r.render(chartType, data, chartSettings{
			id:     "chart_" + hash[:12],
			theme:  theme,
			height: chartHeight(in.Size),
		})
	}
	var chartHTML string
	if r.cache != nil {
		chartHTML, err = r.cache.GetOrRender(key, renderFn)
	} else {
		chartHTML, err = renderFn()
	}
	if err != nil {
		return err
	}

	m := markup{buf: buf}
	openRoot(m, in, "widget--chart-"+chartType)
	m.open("div", "widget__chart", "data-chart-type", chartType)
	m.raw(chartHTML)
	m.close("div")
	m.close("div")
	return nil
}

// chartIdentity feeds the chart id, so the slot key keeps identical charts
// on one page apart.
type chartIdentity struct {
	Data ChartData
	Size Size
	Key  string
}

type chartSettings struct {
	id     string
	theme  string
	height string
}

func chartHeight(size Size) string {
	switch size {
	case SizeSmall:
		return "240px"
	case SizeLarge:
		return "480px"
	default:
		return "360px"
	}
}

func (r *ChartRenderer) render(chartType string, data ChartData, s chartSettings) (string, error) {
	global := r.globalOptions(data, s)
	xAxis := data.XAxis
	if len(xAxis) == 0 {
		xAxis = inferAxisLabels(data.Series)
	}
	switch chartType {
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(xAxis)
		for _, series := range data.Series {
			bar.AddSeries(series.Name, toBarData(xAxis, series.Data))
		}
		return renderChart(bar)
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(xAxis)
		for _, series := range data.Series {
			line.AddSeries(series.Name, toLineData(xAxis, series.Data))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case "pie":
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		for _, series := range data.Series {
			pie.AddSeries(series.Name, toPieData(xAxis, series.Data))
		}
		return renderChart(pie)
	case "scatter":
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(global...)
		for _, series := range data.Series {
			scatter.AddSeries(series.Name, toScatterData(series.Data))
		}
		return renderChart(scatter)
	case "gauge":
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(global...)
		for _, series := range data.Series {
			if len(series.Data) == 0 {
				continue
			}
			gauge.AddSeries(series.Name, []opts.GaugeData{{Name: series.Name, Value: series.Data[0]}})
		}
		return renderChart(gauge)
	default:
		return "", fmt.Errorf("widgets: unsupported chart type %q", chartType)
	}
}

func (r *ChartRenderer) globalOptions(data ChartData, s chartSettings) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: data.Title, Subtitle: data.Subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:    s.id,
			Theme:      s.theme,
			Width:      "100%",
			Height:     s.height,
			AssetsHost: r.assetsHost,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(data.Series) > 1)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func labelAt(labels []string, idx int) string {
	if idx < len(labels) {
		return labels[idx]
	}
	return ""
}

func toBarData(labels []string, values []float64) []opts.BarData {
	out := make([]opts.BarData, len(values))
	for i, v := range values {
		out[i] = opts.BarData{Name: labelAt(labels, i), Value: v}
	}
	return out
}

func toLineData(labels []string, values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		out[i] = opts.LineData{Name: labelAt(labels, i), Value: v}
	}
	return out
}

func toPieData(labels []string, values []float64) []opts.PieData {
	out := make([]opts.PieData, len(values))
	for i, v := range values {
		name := labelAt(labels, i)
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		out[i] = opts.PieData{Name: name, Value: v}
	}
	return out
}

func toScatterData(values []float64) []opts.ScatterData {
	out := make([]opts.ScatterData, len(values))
	for i, v := range values {
		out[i] = opts.ScatterData{Value: []float64{float64(i + 1), v}}
	}
	return out
}

func inferAxisLabels(series []ChartSeries) []string {
	longest := 0
	for _, s := range series {
		if len(s.Data) > longest {
			longest = len(s.Data)
		}
	}
	labels := make([]string, longest)
	for i := range labels {
		labels[i] = fmt.Sprintf("Item %d", i+1)
	}
	return labels
}
