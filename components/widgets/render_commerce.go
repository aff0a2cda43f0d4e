package widgets

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

func renderProduct(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[ProductData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	extra := []string{}
	if data.InStock != nil && !*data.InStock {
		extra = append(extra, "widget--unavailable")
	}
	openRoot(m, in, extra...)
	if data.Image != nil && in.Theme != ThemeCompact {
		m.open("div", "widget__media")
		m.image("widget__image", data.Image)
		m.close("div")
	}
	m.element("span", "widget__badge", data.Badge)
	if href := safeURL(data.Href); href != "" {
		m.open("a", "widget__title", "href", href)
		m.text(data.Name)
		m.close("a")
	} else {
		m.element("h3", "widget__title", data.Name)
	}
	if price := formatPrice(data.Price, data.Currency); price != "" {
		m.open("p", "widget__price")
		m.element("span", "widget__price-current", price)
		if original := formatPrice(data.OriginalPrice, data.Currency); original != "" {
			m.element("s", "widget__price-original", original)
		}
		m.close("p")
	}
	if data.Rating != nil {
		rating := clampRating(*data.Rating)
		m.open("p", "widget__rating", "data-rating", strconv.FormatFloat(rating, 'f', 1, 64))
		m.text(ratingStars(rating))
		if data.Reviews > 0 {
			m.text(fmt.Sprintf(" (%d)", data.Reviews))
		}
		m.close("p")
	}
	if data.InStock != nil {
		label := "In stock"
		if !*data.InStock {
			label = "Out of stock"
		}
		m.element("p", "widget__stock", label)
	}
	m.close("div")
	return nil
}

func formatPrice(value Scalar, currency string) string {
	v := strings.TrimSpace(value.String())
	if v == "" {
		return ""
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return v
	}
	switch strings.ToUpper(currency) {
	case "USD":
		return "$" + v
	case "EUR":
		return "€" + v
	case "GBP":
		return "£" + v
	default:
		return v + " " + strings.ToUpper(currency)
	}
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

func ratingStars(r float64) string {
	full := int(r + 0.5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

func renderOrder(buf *bytes.Buffer, in RenderInput) error {
	data, err := payloadAs[OrderData](in)
	if err != nil {
		return err
	}
	m := markup{buf: buf}
	openRoot(m, in)
	m.open("div", "widget__header")
	m.element("h3", "widget__title", "Order #"+strings.TrimPrefix(data.OrderID, "#"))
	if status := strings.TrimSpace(data.Status); status != "" {
		m.open("span", "widget__status widget__status--"+orderStatusClass(status))
		m.text(status)
		m.close("span")
	}
	m.close("div")
	if data.Customer != "" || data.Date != "" {
		m.open("p", "widget__meta")
		m.element("span", "widget__customer", data.Customer)
		m.element("time", "widget__date", data.Date)
		m.close("p")
	}
	if len(data.Items) > 0 && in.Theme != ThemeCompact {
		m.open("ul", "widget__items")
		for _, item := range data.Items {
			m.open("li", "widget__item")
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}
			m.element("span", "widget__item-name", fmt.Sprintf("%d × %s", qty, item.Name))
			m.element("span", "widget__item-price", formatPrice(item.Price, data.Currency))
			m.close("li")
		}
		m.close("ul")
	}
	if total := formatPrice(data.Total, data.Currency); total != "" {
		m.open("p", "widget__total")
		m.text("Total: " + total)
		m.close("p")
	}
	m.close("div")
	return nil
}

func orderStatusClass(status string) string {
	switch strings.ToLower(status) {
	case "delivered", "completed", "paid":
		return "success"
	case "cancelled", "canceled", "failed", "refunded":
		return "danger"
	case "pending", "processing", "shipped":
		return "warning"
	default:
		return "neutral"
	}
}
