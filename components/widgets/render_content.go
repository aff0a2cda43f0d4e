package widgets

import (
	"bytes"
	"strconv"
	"strings"
)

func renderList(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[ListData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	openRoot(m, in)
	m.element("h3", "widget__title", data.Title)
	if len(data.Items) == 0 {
		empty := data.EmptyText
		if strings.TrimSpace(empty) == "" {
			empty = "No items"
		}
		m.element("p", "widget__empty", empty)
		m.close("div")
		return nil
	}
	m.open("ul", "widget__items")
	for idx, item := range data.Items {
		key := item.ID
		if key == "" {
			key = strconv.Itoa(idx)
		}
		m.open("li", "widget__item", "data-key", key)
		if href := safeURL(item.Href); href != "" {
			m.open("a", "widget__item-title", "href", href)
			m.text(item.Title)
			m.close("a")
		} else {
			m.element("span", "widget__item-title", item.Title)
		}
		m.element("span", "widget__item-subtitle", item.Subtitle)
		if item.Meta != nil {
			m.element("span", "widget__item-badge", item.Meta.Badge)
			m.element("time", "widget__item-time", item.Meta.Timestamp)
			if status := strings.TrimSpace(item.Meta.Status); status != "" {
				m.open("span", "widget__item-status", "data-status", strings.ToLower(status))
				m.text(status)
				m.close("span")
			}
		}
		m.close("li")
	}
	m.close("ul")
	m.close("div")
	return nil
}

func renderText(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[TextData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	openRoot(m, in, "text-"+textAlign(data.Align))
	m.element("h3", "widget__title", data.Title)
	if body := sanitizeRichText(data.Body); body != "" {
		m.open("div", "widget__body")
		m.raw(body)
		m.close("div")
	}
	m.close("div")
	return nil
}

func textAlign(align string) string {
	switch strings.ToLower(strings.TrimSpace(align)) {
	case "center":
		return "center"
	case "right", "end":
		return "right"
	case "justify":
		return "justify"
	default:
		return "left"
	}
}

func renderHeader(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[HeaderData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	openRoot(m, in)
	m.element("p", "widget__eyebrow", data.Eyebrow)
	m.element(headingTag(data.Level), "widget__title", data.Title)
	m.element("p", "widget__subtitle", data.Subtitle)
	writeActions(m, data.Actions)
	m.close("div")
	return nil
}

func headingTag(level int) string {
	if level < 1 || level > 6 {
		level = 2
	}
	return "h" + strconv.Itoa(level)
}

func writeActions(m markup, actions []Link) {
	if len(actions) == 0 {
		return
	}
	m.open("div", "widget__actions")
	for idx := range actions {
		class := "widget__action"
		if idx == 0 {
			class += " widget__action--primary"
		}
		m.link(class, &actions[idx])
	}
	m.close("div")
}

func renderContentBlock(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[ContentBlockData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	position := imagePosition(data.ImagePosition)
	extra := []string{}
	if data.Image != nil {
		extra = append(extra, "widget--image-"+position)
	}
	openRoot(m, in, extra...)
	if data.Image != nil && position != "right" {
		m.image("widget__image", data.Image)
	}
	m.open("div", "widget__content")
	m.element("p", "widget__eyebrow", data.Eyebrow)
	m.element("h3", "widget__title", data.Title)
	if body := sanitizeRichText(data.Body); body != "" {
		m.open("div", "widget__body")
		m.raw(body)
		m.close("div")
	}
	writeActions(m, data.Actions)
	m.close("div")
	if data.Image != nil && position == "right" {
		m.image("widget__image", data.Image)
	}
	m.close("div")
	return nil
}

func imagePosition(pos string) string {
	switch strings.ToLower(strings.TrimSpace(pos)) {
	case "right":
		return "right"
	case "top":
		return "top"
	default:
		return "left"
	}
}
