package widgets

// Settings precedence for renderers that accept both a settings object and
// deprecated top-level props: explicit settings, then the deprecated field,
// then the default. Deprecated fields are folded in once by the decoder
// (migrateLegacy); renderers only fill defaults through the resolved structs.

const (
	defaultCarouselInterval = 5000
	minCarouselInterval     = 1000
	defaultItemsPerView     = 4
	maxItemsPerView         = 6
)

// ResolvedCarouselSettings is the fully defaulted carousel configuration.
type ResolvedCarouselSettings struct {
	AutoPlay   bool
	Interval   int
	ShowDots   bool
	ShowArrows bool
	Loop       bool
}

// ResolveSettings returns carousel settings with legacy props and defaults applied.
func (d CarouselData) ResolveSettings() ResolvedCarouselSettings {
	var s CarouselSettings
	if d.Settings != nil {
		s = *d.Settings
	}
	resolved := ResolvedCarouselSettings{
		AutoPlay:   pickBool(s.AutoPlay, d.AutoPlay, false),
		Interval:   pickInt(s.Interval, d.Interval, defaultCarouselInterval),
		ShowDots:   pickBool(s.ShowDots, nil, true),
		ShowArrows: pickBool(s.ShowArrows, nil, true),
		Loop:       pickBool(s.Loop, nil, true),
	}
	if resolved.Interval < minCarouselInterval {
		resolved.Interval = minCarouselInterval
	}
	return resolved
}

// ResolvedTestimonialSettings is the fully defaulted testimonial configuration.
type ResolvedTestimonialSettings struct {
	ShowRating bool
	ShowAvatar bool
}

// ResolveSettings returns testimonial settings with legacy props and defaults applied.
func (d TestimonialData) ResolveSettings() ResolvedTestimonialSettings {
	var s TestimonialSettings
	if d.Settings != nil {
		s = *d.Settings
	}
	return ResolvedTestimonialSettings{
		ShowRating: pickBool(s.ShowRating, d.ShowRating, true),
		ShowAvatar: pickBool(s.ShowAvatar, nil, true),
	}
}

// ResolvedGridCarouselSettings is the fully defaulted grid carousel configuration.
type ResolvedGridCarouselSettings struct {
	ItemsPerView int
	ShowArrows   bool
}

// ResolveSettings returns grid carousel settings with legacy props and defaults applied.
func (d GridCarouselData) ResolveSettings() ResolvedGridCarouselSettings {
	var s GridCarouselSettings
	if d.Settings != nil {
		s = *d.Settings
	}
	perView := pickInt(s.ItemsPerView, d.ItemsPerView, defaultItemsPerView)
	if perView <= 0 {
		perView = defaultItemsPerView
	}
	if perView > maxItemsPerView {
		perView = maxItemsPerView
	}
	return ResolvedGridCarouselSettings{
		ItemsPerView: perView,
		ShowArrows:   pickBool(s.ShowArrows, nil, true),
	}
}

// migrateLegacy folds deprecated top-level props into settings. It returns a
// new payload; the argument is left untouched.
func migrateLegacy(p Payload) Payload {
	switch data := p.(type) {
	case CarouselData:
		if data.AutoPlay == nil && data.Interval == nil {
			return data
		}
		settings := CarouselSettings{}
		if data.Settings != nil {
			settings = *data.Settings
		}
		if settings.AutoPlay == nil {
			settings.AutoPlay = data.AutoPlay
		}
		if settings.Interval == nil {
			settings.Interval = data.Interval
		}
		data.Settings = &settings
		data.AutoPlay = nil
		data.Interval = nil
		return data
	case TestimonialData:
		if data.ShowRating == nil {
			return data
		}
		settings := TestimonialSettings{}
		if data.Settings != nil {
			settings = *data.Settings
		}
		if settings.ShowRating == nil {
			settings.ShowRating = data.ShowRating
		}
		data.Settings = &settings
		data.ShowRating = nil
		return data
	case GridCarouselData:
		if data.ItemsPerView == nil {
			return data
		}
		settings := GridCarouselSettings{}
		if data.Settings != nil {
			settings = *data.Settings
		}
		if settings.ItemsPerView == nil {
			settings.ItemsPerView = data.ItemsPerView
		}
		data.Settings = &settings
		data.ItemsPerView = nil
		return data
	default:
		return p
	}
}

func pickBool(explicit, legacy *bool, fallback bool) bool {
	if explicit != nil {
		return *explicit
	}
	if legacy != nil {
		return *legacy
	}
	return fallback
}

func pickInt(explicit, legacy *int, fallback int) int {
	if explicit != nil {
		return *explicit
	}
	if legacy != nil {
		return *legacy
	}
	return fallback
}
