package widgets

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ettle/strcase"
)

// Renderer writes the markup for a single payload into buf. Renderers must not
// mutate in.Data and should omit sections whose optional data is absent.
type Renderer func(buf *bytes.Buffer, in RenderInput) error

// RenderInput is everything a renderer receives for one widget.
type RenderInput struct {
	Hints
	Type      WidgetType
	Component string
	Block     string
	Data      Payload
	// Key identifies the slot: the payload id, else the cell index inside a
	// grid. Empty for a standalone widget without an id.
	Key       string
	ClassName string
	Style     Style
}

// Descriptor binds a widget type to its renderer and payload contract.
type Descriptor struct {
	Type      WidgetType
	Component string
	// Block is the CSS block name used for the widget root class.
	Block      string
	Render     Renderer
	NewPayload func() Payload
	Schema     map[string]any
}

// RendererHook lets packages register renderers during init().
type RendererHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []RendererHook
)

// RegisterRendererHook registers a hook executed against new registries.
func RegisterRendererHook(h RendererHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry is the type -> renderer dispatch table.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[WidgetType]Descriptor
}

// NewRegistry builds a registry with the built-in renderers and applies global hooks.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	for _, desc := range builtinDescriptors() {
		reg.MustRegister(desc)
	}
	_ = reg.ApplyHooks()
	return reg
}

// NewEmptyRegistry builds a registry without any renderer.
func NewEmptyRegistry() *Registry {
	return &Registry{descriptors: map[WidgetType]Descriptor{}}
}

// ApplyHooks executes registered renderer hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register stores a descriptor, replacing any previous entry for the type.
func (r *Registry) Register(desc Descriptor) error {
	desc.Type = WidgetType(strings.TrimSpace(string(desc.Type)))
	if desc.Type == "" {
		return fmt.Errorf("widgets: descriptor type is required")
	}
	if desc.Type == TypeGrid {
		return fmt.Errorf("widgets: %q is reserved for the grid meta type", TypeGrid)
	}
	if desc.Render == nil {
		return fmt.Errorf("widgets: renderer for %q is nil", desc.Type)
	}
	if desc.NewPayload == nil {
		return fmt.Errorf("widgets: payload factory for %q is nil", desc.Type)
	}
	if desc.Component == "" {
		desc.Component = strcase.ToPascal(string(desc.Type)) + "Widget"
	}
	if desc.Block == "" {
		desc.Block = strcase.ToKebab(string(desc.Type))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[desc.Type] = desc
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(desc Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Descriptor fetches the descriptor for a type.
func (r *Registry) Descriptor(t WidgetType) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[t]
	return desc, ok
}

// Types returns the registered widget types sorted by name.
func (r *Registry) Types() []WidgetType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]WidgetType, 0, len(r.descriptors))
	for t := range r.descriptors {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Descriptors returns all descriptors sorted by type.
func (r *Registry) Descriptors() []Descriptor {
	types := r.Types()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(types))
	for _, t := range types {
		out = append(out, r.descriptors[t])
	}
	return out
}
