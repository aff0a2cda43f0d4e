package widgets

import (
	"bytes"
	"strconv"
	"strings"
)

func renderCarousel(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[CarouselData](in)
	if err != nil {
		return err
	}
	settings := data.ResolveSettings()
	m := markup{buf: buf}
	openRoot(m, in)
	m.open("div", "widget__track",
		"data-autoplay", strconv.FormatBool(settings.AutoPlay),
		"data-interval", strconv.Itoa(settings.Interval),
		"data-loop", strconv.FormatBool(settings.Loop),
		"data-slides", strconv.Itoa(len(data.Slides)),
	)
	for idx, slide := range data.Slides {
		class := "widget__slide"
		if idx == 0 {
			class += " widget__slide--active"
		}
		m.open("figure", class, "data-key", slideKey(slide.ID, idx))
		m.image("widget__image", slide.Image)
		if slide.Title != "" || slide.Body != "" || slide.Link != nil {
			m.open("figcaption", "widget__caption")
			m.element("h3", "widget__title", slide.Title)
			m.element("p", "widget__body", slide.Body)
			m.link("widget__link", slide.Link)
			m.close("figcaption")
		}
		m.close("figure")
	}
	m.close("div")
	if len(data.Slides) > 1 {
		if settings.ShowArrows {
			writeArrows(m)
		}
		if settings.ShowDots {
			m.open("div", "widget__dots", "role", "tablist")
			for idx := range data.Slides {
				m.open("button", "widget__dot", "type", "button", "data-slide", strconv.Itoa(idx), "aria-label", "Go to slide "+strconv.Itoa(idx+1))
				m.close("button")
			}
			m.close("div")
		}
	}
	m.close("div")
	return nil
}

func slideKey(id string, idx int) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return strconv.Itoa(idx)
}

func writeArrows(m markup) {
	m.open("button", "widget__arrow widget__arrow--prev", "type", "button", "aria-label", "Previous")
	m.text("‹")
	m.close("button")
	m.open("button", "widget__arrow widget__arrow--next", "type", "button", "aria-label", "Next")
	m.text("›")
	m.close("button")
}

func renderTestimonial(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[TestimonialData](in)
	if err != nil {
		return err
	}
	settings := data.ResolveSettings()
	m := markup{buf: buf}
	openRoot(m, in)
	if settings.ShowRating && data.Rating != nil {
		rating := clampRating(*data.Rating)
		m.open("p", "widget__rating", "data-rating", strconv.FormatFloat(rating, 'f', 1, 64))
		m.text(ratingStars(rating))
		m.close("p")
	}
	m.open("blockquote", "widget__quote")
	m.text(data.Quote)
	m.close("blockquote")
	m.open("div", "widget__author")
	if settings.ShowAvatar {
		m.image("widget__avatar", data.Avatar)
	}
	m.element("p", "widget__author-name", data.Author)
	if role := joinNonEmpty(", ", data.Role, data.Company); role != "" {
		m.element("p", "widget__author-role", role)
	}
	m.close("div")
	m.close("div")
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func renderGridCarousel(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[GridCarouselData](in)
	if err != nil {
		return err
	}
	settings := data.ResolveSettings()
	m := markup{buf: buf}
	openRoot(m, in)
	m.element("h3", "widget__title", data.Title)
	m.open("div", "widget__track grid-flow-col auto-cols-[calc(100%/"+strconv.Itoa(settings.ItemsPerView)+")]",
		"data-items-per-view", strconv.Itoa(settings.ItemsPerView),
		"data-pages", strconv.Itoa(pageCount(len(data.Items), settings.ItemsPerView)),
	)
	for idx, item := range data.Items {
		m.open("div", "widget__tile", "data-key", slideKey(item.ID, idx))
		m.image("widget__image", item.Image)
		if href := safeURL(item.Href); href != "" {
			m.open("a", "widget__tile-title", "href", href)
			m.text(item.Title)
			m.close("a")
		} else {
			m.element("span", "widget__tile-title", item.Title)
		}
		m.element("span", "widget__tile-subtitle", item.Subtitle)
		m.close("div")
	}
	m.close("div")
	if settings.ShowArrows && len(data.Items) > settings.ItemsPerView {
		writeArrows(m)
	}
	m.close("div")
	return nil
}

func pageCount(items, perView int) int {
	if items <= 0 || perView <= 0 {
		return 0
	}
	return (items + perView - 1) / perView
}
