package widgets

import "strings"

// WidgetType tags a configuration with the renderer that should handle it.
type WidgetType string

// Built-in widget types.
const (
	TypeMetric       WidgetType = "metric"
	TypeInfo         WidgetType = "info"
	TypeProduct      WidgetType = "product"
	TypeOrder        WidgetType = "order"
	TypeList         WidgetType = "list"
	TypeText         WidgetType = "text"
	TypeHeader       WidgetType = "header"
	TypeCarousel     WidgetType = "carousel"
	TypeTestimonial  WidgetType = "testimonial"
	TypeGridCarousel WidgetType = "gridCarousel"
	TypeContentBlock WidgetType = "contentBlock"
	TypeChart        WidgetType = "chart"
	// TypeGrid is the meta type whose data carries a heterogeneous widget list.
	TypeGrid WidgetType = "grid"
)

// Theme is a cross-cutting presentational hint.
type Theme string

const (
	ThemeDefault      Theme = "default"
	ThemeMinimal      Theme = "minimal"
	ThemeModern       Theme = "modern"
	ThemeProfessional Theme = "professional"
	ThemeCompact      Theme = "compact"
)

// Variant selects the intent color treatment.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantSuccess   Variant = "success"
	VariantDanger    Variant = "danger"
	VariantError     Variant = "error"
	VariantWarning   Variant = "warning"
	VariantInfo      Variant = "info"
	VariantNeutral   Variant = "neutral"
)

// Size selects the density of a widget.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// Normalize returns the theme or ThemeDefault when the value is not recognized.
func (t Theme) Normalize() Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(string(t)))) {
	case ThemeMinimal:
		return ThemeMinimal
	case ThemeModern:
		return ThemeModern
	case ThemeProfessional:
		return ThemeProfessional
	case ThemeCompact:
		return ThemeCompact
	default:
		return ThemeDefault
	}
}

// Normalize returns the variant or VariantPrimary when the value is not recognized.
func (v Variant) Normalize() Variant {
	switch Variant(strings.ToLower(strings.TrimSpace(string(v)))) {
	case VariantSecondary:
		return VariantSecondary
	case VariantSuccess:
		return VariantSuccess
	case VariantDanger:
		return VariantDanger
	case VariantError:
		return VariantError
	case VariantWarning:
		return VariantWarning
	case VariantInfo:
		return VariantInfo
	case VariantNeutral:
		return VariantNeutral
	default:
		return VariantPrimary
	}
}

// Normalize returns the size or SizeMedium when the value is not recognized.
func (s Size) Normalize() Size {
	switch Size(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SizeSmall:
		return SizeSmall
	case SizeLarge:
		return SizeLarge
	default:
		return SizeMedium
	}
}

// Spacing is the gap hint between grid cells.
type Spacing string

const (
	SpacingNone   Spacing = "none"
	SpacingSmall  Spacing = "sm"
	SpacingMedium Spacing = "md"
	SpacingLarge  Spacing = "lg"
)

// Align is the cross-axis alignment hint for grid cells.
type Align string

const (
	AlignStart   Align = "start"
	AlignCenter  Align = "center"
	AlignEnd     Align = "end"
	AlignStretch Align = "stretch"
)

// GridConfig is the optional explicit column configuration. Zero column values
// are treated as unset.
type GridConfig struct {
	Mobile  int     `json:"mobile,omitempty" yaml:"mobile,omitempty" toml:"mobile,omitempty"`
	Tablet  int     `json:"tablet,omitempty" yaml:"tablet,omitempty" toml:"tablet,omitempty"`
	Desktop int     `json:"desktop,omitempty" yaml:"desktop,omitempty" toml:"desktop,omitempty"`
	Auto    *bool   `json:"auto,omitempty" yaml:"auto,omitempty" toml:"auto,omitempty"`
	Spacing Spacing `json:"spacing,omitempty" yaml:"spacing,omitempty" toml:"spacing,omitempty"`
	Align   Align   `json:"align,omitempty" yaml:"align,omitempty" toml:"align,omitempty"`
}

// WidgetConfig is the root value consumed by the dispatcher.
//
// Exactly one shape applies: Type == TypeGrid with Data holding GridData, Items
// set (even empty) when the source data was an array, or a single Data payload.
type WidgetConfig struct {
	Type    WidgetType
	Data    Payload
	Items   []Payload
	Theme   Theme
	Variant Variant
	Size    Size
	Grid    *GridConfig
}

// ItemID exposes the key of the config's own payload so grid entries keep
// stable identities.
func (cfg WidgetConfig) ItemID() string {
	if cfg.Data == nil {
		return ""
	}
	return itemID(cfg.Data)
}

// IsBatch reports whether the config carries an array of payloads.
func (cfg WidgetConfig) IsBatch() bool {
	return cfg.Items != nil
}

// Hints groups the presentational hints handed to renderers.
type Hints struct {
	Theme   Theme
	Variant Variant
	Size    Size
}

func (cfg WidgetConfig) hints() Hints {
	return Hints{
		Theme:   cfg.Theme.Normalize(),
		Variant: cfg.Variant.Normalize(),
		Size:    cfg.Size.Normalize(),
	}
}
