package widgets

import (
	"bytes"
	"fmt"
	"strings"
)

func payloadAs[T Payload](in RenderInput) (T, error) {
	if v, ok := in.Data.(T); ok {
		return v, nil
	}
	if v, ok := any(in.Data).(*T); ok && v != nil {
		return *v, nil
	}
	var zero T
	return zero, fmt.Errorf("widgets: %s expects %T payload, got %T", in.Component, zero, in.Data)
}

func renderMetric(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[MetricData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	extra := []string{}
	if in.Theme == ThemeCompact {
		extra = append(extra, "widget--inline")
	}
	openRoot(m, in, extra...)
	if data.Icon != "" {
		m.open("span", "widget__icon", "data-icon", data.Icon, "aria-hidden", "true")
		m.close("span")
	}
	m.element("p", "widget__label", data.Label)
	m.open("p", "widget__value")
	m.text(data.Prefix + data.Value.String() + data.Suffix)
	m.close("p")
	if data.Trend != nil {
		direction := trendDirection(data.Trend.Direction)
		m.open("span", "widget__trend widget__trend--"+direction, "data-trend", direction)
		m.text(trendSymbol(direction))
		if v := strings.TrimSpace(data.Trend.Value); v != "" {
			m.text(" " + v)
		}
		m.close("span")
	}
	if in.Theme != ThemeMinimal {
		m.element("p", "widget__description", data.Description)
	}
	m.close("div")
	return nil
}

func trendDirection(direction string) string {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "up", "increase", "positive":
		return "up"
	case "down", "decrease", "negative":
		return "down"
	default:
		return "neutral"
	}
}

func trendSymbol(direction string) string {
	switch direction {
	case "up":
		return "▲"
	case "down":
		return "▼"
	default:
		return "→"
	}
}

func renderInfo(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[InfoData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	openRoot(m, in)
	if data.Icon != "" || data.Title != "" {
		m.open("div", "widget__header")
		if data.Icon != "" {
			m.open("span", "widget__icon", "data-icon", data.Icon, "aria-hidden", "true")
			m.close("span")
		}
		m.element("h3", "widget__title", data.Title)
		m.close("div")
	}
	m.element("p", "widget__description", data.Description)
	if len(data.Items) > 0 {
		m.open("dl", "widget__items")
		for _, item := range data.Items {
			m.open("div", "widget__item")
			m.element("dt", "widget__item-label", item.Label)
			m.open("dd", "widget__item-value")
			m.text(item.Value.String())
			m.close("dd")
			m.close("div")
		}
		m.close("dl")
	}
	m.link("widget__link", data.Link)
	m.close("div")
	return nil
}
