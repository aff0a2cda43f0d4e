package widgets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a configuration document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrEmptyConfig is returned when a document holds no configuration.
var ErrEmptyConfig = errors.New("widgets: configuration is empty")

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("widgets: unsupported format %q", name)
	}
}

// Decoder turns external configuration documents into WidgetConfig values.
// Keys that are not part of the wire contract are rejected, unknown widget
// types decode to UnknownPayload and deprecated renderer props are folded
// into their settings objects.
type Decoder struct {
	registry  *Registry
	validator ConfigValidator
	// lenient receives grid entries that failed to decode; nil keeps the
	// decoder strict.
	lenient Diagnostics
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithDecoderRegistry decodes against reg instead of the built-in registry.
func WithDecoderRegistry(reg *Registry) DecoderOption {
	return func(d *Decoder) {
		if reg != nil {
			d.registry = reg
		}
	}
}

// WithValidator runs v against every known payload before decoding it.
func WithValidator(v ConfigValidator) DecoderOption {
	return func(d *Decoder) {
		if v == nil {
			v = noopConfigValidator{}
		}
		d.validator = v
	}
}

// WithLenientGrids keeps a grid decodable when some of its entries are
// malformed. Each bad entry is reported to diag and kept as an
// UnknownPayload cell carrying its raw data, so the dispatcher renders the
// siblings and handles the entry on its own. Authoring paths should stay
// strict.
func WithLenientGrids(diag Diagnostics) DecoderOption {
	return func(d *Decoder) {
		d.lenient = diag
	}
}

// NewDecoder builds a decoder. Schema validation is off unless WithValidator is set.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{validator: noopConfigValidator{}}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.registry == nil {
		d.registry = NewRegistry()
	}
	return d
}

var (
	defaultDecoderOnce sync.Once
	defaultDecoder     *Decoder
)

func sharedDecoder() *Decoder {
	defaultDecoderOnce.Do(func() {
		defaultDecoder = NewDecoder()
	})
	return defaultDecoder
}

// DecodeFile reads and decodes a configuration file, inferring the format
// from its extension.
func (d *Decoder) DecodeFile(path string) (WidgetConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return WidgetConfig{}, fmt.Errorf("widgets: read config %s: %w", path, err)
	}
	cfg, err := d.DecodeBytes(data, FormatFromPath(path))
	if err != nil {
		return WidgetConfig{}, fmt.Errorf("widgets: decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a whole document from r.
func (d *Decoder) Decode(r io.Reader, format Format) (WidgetConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return WidgetConfig{}, fmt.Errorf("widgets: read config: %w", err)
	}
	return d.DecodeBytes(data, format)
}

// DecodeBytes decodes a document in the given format.
func (d *Decoder) DecodeBytes(data []byte, format Format) (WidgetConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return WidgetConfig{}, ErrEmptyConfig
	}
	switch format {
	case FormatJSON, "":
		return d.DecodeJSON(data)
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return WidgetConfig{}, fmt.Errorf("widgets: parse yaml: %w", err)
		}
		return d.decodeGeneric(doc)
	case FormatTOML:
		var doc map[string]any
		decoder := toml.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&doc); err != nil {
			return WidgetConfig{}, fmt.Errorf("widgets: parse toml: %w", err)
		}
		return d.decodeGeneric(doc)
	default:
		return WidgetConfig{}, fmt.Errorf("widgets: unsupported format %q", format)
	}
}

func (d *Decoder) decodeGeneric(doc any) (WidgetConfig, error) {
	if doc == nil {
		return WidgetConfig{}, ErrEmptyConfig
	}
	data, err := json.Marshal(stringKeys(doc))
	if err != nil {
		return WidgetConfig{}, fmt.Errorf("widgets: normalize config: %w", err)
	}
	return d.DecodeJSON(data)
}

// DecodeJSON decodes a JSON document. Every problem found is reported,
// joined into a single error.
func (d *Decoder) DecodeJSON(data []byte) (WidgetConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return WidgetConfig{}, ErrEmptyConfig
	}
	cfg, err := d.decodeConfig(data, "")
	if err != nil {
		return WidgetConfig{}, err
	}
	return cfg, nil
}

type wireConfig struct {
	Type    WidgetType      `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Theme   Theme           `json:"theme,omitempty"`
	Variant Variant         `json:"variant,omitempty"`
	Size    Size            `json:"size,omitempty"`
	Grid    *GridConfig     `json:"grid,omitempty"`
}

type wireGridData struct {
	Widgets []json.RawMessage `json:"widgets"`
}

func (d *Decoder) decodeConfig(data []byte, path string) (WidgetConfig, error) {
	var wire wireConfig
	if err := strictUnmarshal(data, &wire); err != nil {
		return WidgetConfig{}, fmt.Errorf("widgets: %s: %w", pathOr(path, "config"), err)
	}
	wire.Type = WidgetType(strings.TrimSpace(string(wire.Type)))
	if wire.Type == "" {
		return WidgetConfig{}, fmt.Errorf("widgets: %s: type is required", pathOr(path, "config"))
	}
	cfg := WidgetConfig{
		Type:    wire.Type,
		Theme:   wire.Theme,
		Variant: wire.Variant,
		Size:    wire.Size,
		Grid:    wire.Grid,
	}
	raw := bytes.TrimSpace(wire.Data)
	dataPath := joinPath(path, "data")

	switch {
	case cfg.Type == TypeGrid:
		var grid wireGridData
		if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
			if err := strictUnmarshal(raw, &grid); err != nil {
				return WidgetConfig{}, fmt.Errorf("widgets: %s: %w", dataPath, err)
			}
		}
		widgets := make([]WidgetConfig, 0, len(grid.Widgets))
		var errs []error
		for idx, entry := range grid.Widgets {
			child, err := d.decodeConfig(entry, fmt.Sprintf("%s.widgets[%d]", dataPath, idx))
			if err != nil {
				if d.lenient == nil {
					errs = append(errs, err)
					continue
				}
				child = d.degradeEntry(entry, idx, err)
			}
			widgets = append(widgets, child)
		}
		if len(errs) > 0 {
			return WidgetConfig{}, errors.Join(errs...)
		}
		cfg.Data = GridData{Widgets: widgets}
	case len(raw) > 0 && raw[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return WidgetConfig{}, fmt.Errorf("widgets: %s: %w", dataPath, err)
		}
		cfg.Items = make([]Payload, 0, len(items))
		var errs []error
		for idx, item := range items {
			payload, err := d.decodePayload(cfg.Type, item)
			if err != nil {
				errs = append(errs, fmt.Errorf("widgets: %s[%d]: %w", dataPath, idx, err))
				continue
			}
			cfg.Items = append(cfg.Items, payload)
		}
		if len(errs) > 0 {
			return WidgetConfig{}, errors.Join(errs...)
		}
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		if _, known := d.registry.Descriptor(cfg.Type); !known {
			cfg.Data = UnknownPayload{Type: cfg.Type}
		}
	default:
		payload, err := d.decodePayload(cfg.Type, raw)
		if err != nil {
			return WidgetConfig{}, fmt.Errorf("widgets: %s: %w", dataPath, err)
		}
		cfg.Data = payload
	}
	return cfg, nil
}

func (d *Decoder) decodePayload(t WidgetType, raw []byte) (Payload, error) {
	desc, ok := d.registry.Descriptor(t)
	if !ok {
		return UnknownPayload{Type: t, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
	if err := d.validator.Validate(desc, json.RawMessage(raw)); err != nil {
		return nil, err
	}
	return decodeInto(desc, raw)
}

// decodeInto strictly decodes raw into the descriptor payload type.
func decodeInto(desc Descriptor, raw []byte) (Payload, error) {
	target := desc.NewPayload()
	if isNilPayload(target) {
		return nil, fmt.Errorf("payload factory for %q returned nil", desc.Type)
	}
	if err := strictUnmarshal(raw, target); err != nil {
		return nil, err
	}
	return migrateLegacy(derefPayload(target)), nil
}

// degradeEntry turns a grid entry that failed to decode into an
// UnknownPayload cell and reports why.
func (d *Decoder) degradeEntry(entry json.RawMessage, idx int, err error) WidgetConfig {
	var head struct {
		Type WidgetType      `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(entry, &head)
	t := WidgetType(strings.TrimSpace(string(head.Type)))
	d.lenient.Report(context.Background(), Diagnostic{
		Code:       CodeInvalidInput,
		WidgetType: t,
		Index:      idx,
		Message:    "grid entry could not be decoded",
		Err:        err,
	})
	raw := bytes.TrimSpace(head.Data)
	if bytes.Equal(raw, []byte("null")) {
		raw = nil
	}
	return WidgetConfig{Type: t, Data: UnknownPayload{Type: t, Raw: raw}}
}

// resolveUnknown upgrades an UnknownPayload once a registry knows its type.
func resolveUnknown(desc Descriptor, p Payload) (Payload, error) {
	unknown, ok := p.(UnknownPayload)
	if !ok {
		return p, nil
	}
	if len(unknown.Raw) == 0 {
		return derefPayload(desc.NewPayload()), nil
	}
	return decodeInto(desc, unknown.Raw)
}

func strictUnmarshal(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// stringKeys converts map[any]any values produced by YAML into JSON friendly maps.
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[key] = stringKeys(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[fmt.Sprint(key)] = stringKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for idx, item := range val {
			out[idx] = stringKeys(item)
		}
		return out
	default:
		return v
	}
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

func pathOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

// MarshalJSON writes the config back in its wire shape. The zero config
// encodes as null.
func (cfg WidgetConfig) MarshalJSON() ([]byte, error) {
	if cfg.isZero() {
		return []byte("null"), nil
	}
	wire := struct {
		Type    WidgetType  `json:"type"`
		Data    any         `json:"data,omitempty"`
		Theme   Theme       `json:"theme,omitempty"`
		Variant Variant     `json:"variant,omitempty"`
		Size    Size        `json:"size,omitempty"`
		Grid    *GridConfig `json:"grid,omitempty"`
	}{
		Type:    cfg.Type,
		Theme:   cfg.Theme,
		Variant: cfg.Variant,
		Size:    cfg.Size,
		Grid:    cfg.Grid,
	}
	switch {
	case cfg.Type == TypeGrid:
		grid, _ := gridPayload(cfg.Data)
		widgets := grid.Widgets
		if widgets == nil {
			widgets = []WidgetConfig{}
		}
		wire.Data = map[string]any{"widgets": widgets}
	case cfg.IsBatch():
		wire.Data = cfg.Items
	case !isNilPayload(cfg.Data):
		wire.Data = cfg.Data
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the wire shape against the built-in registry. null
// and documents without a type or data decode to the zero config, so values
// written by MarshalJSON always read back.
func (cfg *WidgetConfig) UnmarshalJSON(data []byte) error {
	if untypedEmpty(data) {
		*cfg = WidgetConfig{}
		return nil
	}
	decoded, err := sharedDecoder().DecodeJSON(data)
	if err != nil {
		return err
	}
	*cfg = decoded
	return nil
}

func (cfg WidgetConfig) isZero() bool {
	return cfg.Type == "" && isNilPayload(cfg.Data) && cfg.Items == nil && cfg.Grid == nil &&
		cfg.Theme == "" && cfg.Variant == "" && cfg.Size == ""
}

func untypedEmpty(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var head struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return false
	}
	data = bytes.TrimSpace(head.Data)
	return strings.TrimSpace(head.Type) == "" && (len(data) == 0 || bytes.Equal(data, []byte("null")))
}

// MarshalJSON writes the raw payload untouched.
func (p UnknownPayload) MarshalJSON() ([]byte, error) {
	if len(p.Raw) == 0 {
		return []byte("null"), nil
	}
	return p.Raw, nil
}
