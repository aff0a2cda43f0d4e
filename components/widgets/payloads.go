package widgets

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the closed set of renderer-specific data records.
type Payload interface {
	WidgetType() WidgetType
}

// Identity carries the optional id used as a grid item key.
type Identity struct {
	ID string `json:"id,omitempty"`
}

// ItemID returns the payload id.
func (i Identity) ItemID() string { return i.ID }

type identified interface {
	ItemID() string
}

func itemID(v any) string {
	if v == nil {
		return ""
	}
	if item, ok := v.(identified); ok {
		return item.ItemID()
	}
	return ""
}

// Scalar is a display value that accepts JSON strings, numbers or booleans.
type Scalar string

// UnmarshalJSON keeps numbers verbatim so "10" and 10 render identically.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = Scalar(value)
		return nil
	case '{', '[':
		return fmt.Errorf("widgets: scalar value must be a string, number or boolean")
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("widgets: invalid scalar %q", string(trimmed))
	}
	*s = Scalar(trimmed)
	return nil
}

// String returns the display form.
func (s Scalar) String() string { return string(s) }

// Link is a labelled navigation target.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Image references a picture with alternative text.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Trend describes the direction and magnitude of a metric change.
type Trend struct {
	Direction string `json:"direction"`
	Value     string `json:"value,omitempty"`
}

// MetricData renders as MetricWidget.
type MetricData struct {
	Identity
	Value       Scalar `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Prefix      string `json:"prefix,omitempty"`
	Suffix      string `json:"suffix,omitempty"`
	Trend       *Trend `json:"trend,omitempty"`
}

func (MetricData) WidgetType() WidgetType { return TypeMetric }

// InfoItem is a label/value row inside an info card.
type InfoItem struct {
	Label string `json:"label"`
	Value Scalar `json:"value"`
}

// InfoData renders as InfoWidget.
type InfoData struct {
	Identity
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Items       []InfoItem `json:"items,omitempty"`
	Link        *Link      `json:"link,omitempty"`
}

func (InfoData) WidgetType() WidgetType { return TypeInfo }

// ProductData renders as ProductWidget.
type ProductData struct {
	Identity
	Name          string   `json:"name"`
	Price         Scalar   `json:"price,omitempty"`
	OriginalPrice Scalar   `json:"originalPrice,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Image         *Image   `json:"image,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Reviews       int      `json:"reviews,omitempty"`
	Badge         string   `json:"badge,omitempty"`
	Href          string   `json:"href,omitempty"`
	InStock       *bool    `json:"inStock,omitempty"`
}

func (ProductData) WidgetType() WidgetType { return TypeProduct }

// OrderItem is a line of an order summary.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity,omitempty"`
	Price    Scalar `json:"price,omitempty"`
}

// OrderData renders as OrderWidget.
type OrderData struct {
	Identity
	OrderID  string      `json:"orderId"`
	Status   string      `json:"status,omitempty"`
	Date     string      `json:"date,omitempty"`
	Customer string      `json:"customer,omitempty"`
	Total    Scalar      `json:"total,omitempty"`
	Currency string      `json:"currency,omitempty"`
	Items    []OrderItem `json:"items,omitempty"`
}

func (OrderData) WidgetType() WidgetType { return TypeOrder }

// ListItemMeta replaces the open metadata record of list rows.
type ListItemMeta struct {
	Badge     string `json:"badge,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Status    string `json:"status,omitempty"`
}

// ListItem is a row of a list widget.
type ListItem struct {
	ID       string        `json:"id,omitempty"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Href     string        `json:"href,omitempty"`
	Meta     *ListItemMeta `json:"meta,omitempty"`
}

// ListData renders as ListWidget.
type ListData struct {
	Identity
	Title     string     `json:"title,omitempty"`
	EmptyText string     `json:"emptyText,omitempty"`
	Items     []ListItem `json:"items"`
}

func (ListData) WidgetType() WidgetType { return TypeList }

// TextData renders as TextWidget. Body may contain markup; it is sanitized.
type TextData struct {
	Identity
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
	Align string `json:"align,omitempty"`
}

func (TextData) WidgetType() WidgetType { return TypeText }

// HeaderData renders as HeaderWidget.
type HeaderData struct {
	Identity
	Eyebrow  string `json:"eyebrow,omitempty"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Level    int    `json:"level,omitempty"`
	Actions  []Link `json:"actions,omitempty"`
}

func (HeaderData) WidgetType() WidgetType { return TypeHeader }

// Slide is a single carousel frame.
type Slide struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Image *Image `json:"image,omitempty"`
	Link  *Link  `json:"link,omitempty"`
}

// CarouselSettings configures carousel behavior. Nil fields take defaults.
type CarouselSettings struct {
	AutoPlay   *bool `json:"autoPlay,omitempty"`
	Interval   *int  `json:"interval,omitempty"`
	ShowDots   *bool `json:"showDots,omitempty"`
	ShowArrows *bool `json:"showArrows,omitempty"`
	Loop       *bool `json:"loop,omitempty"`
}

// CarouselData renders as CarouselWidget.
type CarouselData struct {
	Identity
	Slides   []Slide           `json:"slides"`
	Settings *CarouselSettings `json:"settings,omitempty"`

	// Deprecated: use Settings.AutoPlay.
	AutoPlay *bool `json:"autoPlay,omitempty"`
	// Deprecated: use Settings.Interval.
	Interval *int `json:"interval,omitempty"`
}

func (CarouselData) WidgetType() WidgetType { return TypeCarousel }

// TestimonialSettings toggles optional testimonial sections.
type TestimonialSettings struct {
	ShowRating *bool `json:"showRating,omitempty"`
	ShowAvatar *bool `json:"showAvatar,omitempty"`
}

// TestimonialData renders as TestimonialWidget.
type TestimonialData struct {
	Identity
	Quote    string               `json:"quote"`
	Author   string               `json:"author"`
	Role     string               `json:"role,omitempty"`
	Company  string               `json:"company,omitempty"`
	Avatar   *Image               `json:"avatar,omitempty"`
	Rating   *float64             `json:"rating,omitempty"`
	Settings *TestimonialSettings `json:"settings,omitempty"`

	// Deprecated: use Settings.ShowRating.
	ShowRating *bool `json:"showRating,omitempty"`
}

func (TestimonialData) WidgetType() WidgetType { return TypeTestimonial }

// GridCarouselItem is a tile of a grid carousel.
type GridCarouselItem struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    *Image `json:"image,omitempty"`
	Href     string `json:"href,omitempty"`
}

// GridCarouselSettings configures the visible page size.
type GridCarouselSettings struct {
	ItemsPerView *int  `json:"itemsPerView,omitempty"`
	ShowArrows   *bool `json:"showArrows,omitempty"`
}

// GridCarouselData renders as GridCarouselWidget.
type GridCarouselData struct {
	Identity
	Title    string                `json:"title,omitempty"`
	Items    []GridCarouselItem    `json:"items"`
	Settings *GridCarouselSettings `json:"settings,omitempty"`

	// Deprecated: use Settings.ItemsPerView.
	ItemsPerView *int `json:"itemsPerView,omitempty"`
}

func (GridCarouselData) WidgetType() WidgetType { return TypeGridCarousel }

// ContentBlockData renders as ContentBlockWidget.
type ContentBlockData struct {
	Identity
	Eyebrow       string `json:"eyebrow,omitempty"`
	Title         string `json:"title"`
	Body          string `json:"body,omitempty"`
	Image         *Image `json:"image,omitempty"`
	ImagePosition string `json:"imagePosition,omitempty"`
	Actions       []Link `json:"actions,omitempty"`
}

func (ContentBlockData) WidgetType() WidgetType { return TypeContentBlock }

// ChartSeries is a named list of values.
type ChartSeries struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartData renders as ChartWidget through go-echarts.
type ChartData struct {
	Identity
	Title     string        `json:"title,omitempty"`
	Subtitle  string        `json:"subtitle,omitempty"`
	ChartType string        `json:"chartType"`
	XAxis     []string      `json:"xAxis,omitempty"`
	Series    []ChartSeries `json:"series"`
}

func (ChartData) WidgetType() WidgetType { return TypeChart }

// GridData is the payload of the grid meta type.
type GridData struct {
	Widgets []WidgetConfig
}

func (GridData) WidgetType() WidgetType { return TypeGrid }

// UnknownPayload keeps data for types the registry does not know so external
// configuration decodes without error and the dispatcher can drop it.
type UnknownPayload struct {
	Type WidgetType
	Raw  json.RawMessage
}

func (p UnknownPayload) WidgetType() WidgetType { return p.Type }

// ItemID extracts an id from the raw payload when present.
func (p UnknownPayload) ItemID() string {
	if len(p.Raw) == 0 {
		return ""
	}
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(p.Raw, &probe); err != nil {
		return ""
	}
	return probe.ID
}
