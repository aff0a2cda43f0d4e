package widgets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinRegistry(t *testing.T) {
	reg := NewRegistry()
	want := []WidgetType{
		TypeCarousel, TypeChart, TypeContentBlock, TypeGridCarousel, TypeHeader, TypeInfo,
		TypeList, TypeMetric, TypeOrder, TypeProduct, TypeTestimonial, TypeText,
	}
	assert.Equal(t, want, reg.Types())

	components := map[WidgetType]string{}
	for _, desc := range reg.Descriptors() {
		components[desc.Type] = desc.Component
		assert.NotEmpty(t, desc.Schema, desc.Type)
		payload := desc.NewPayload()
		require.NotNil(t, payload)
		assert.Equal(t, desc.Type, payload.WidgetType())
	}
	assert.Equal(t, "GridCarouselWidget", components[TypeGridCarousel])
	assert.Equal(t, "ContentBlockWidget", components[TypeContentBlock])
	_, ok := reg.Descriptor(TypeGrid)
	assert.False(t, ok, "grid is a meta type")
}

func TestRegisterValidatesDescriptor(t *testing.T) {
	reg := NewEmptyRegistry()
	render := func(*bytes.Buffer, RenderInput) error { return nil }
	factory := func() Payload { return &TextData{} }

	assert.Error(t, reg.Register(Descriptor{Render: render, NewPayload: factory}))
	assert.Error(t, reg.Register(Descriptor{Type: TypeGrid, Render: render, NewPayload: factory}))
	assert.Error(t, reg.Register(Descriptor{Type: "x", NewPayload: factory}))
	assert.Error(t, reg.Register(Descriptor{Type: "x", Render: render}))
	assert.Panics(t, func() { reg.MustRegister(Descriptor{}) })

	require.NoError(t, reg.Register(Descriptor{Type: " pricingTable ", Render: render, NewPayload: factory}))
	desc, ok := reg.Descriptor("pricingTable")
	require.True(t, ok)
	assert.Equal(t, "PricingTableWidget", desc.Component)
	assert.Equal(t, "pricing-table", desc.Block)
}

func TestRegisterReplacesExisting(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Descriptor{
		Type:       TypeText,
		Component:  "FancyText",
		Render:     func(buf *bytes.Buffer, in RenderInput) error { buf.WriteString("<em>fancy</em>"); return nil },
		NewPayload: func() Payload { return &TextData{} },
	})
	w := New(WithRegistry(reg), WithDiagnostics(NoopDiagnostics()))
	node := w.Render(t.Context(), WidgetConfig{Type: TypeText})
	require.NotNil(t, node)
	assert.Equal(t, "FancyText", node.Component)
	assert.Equal(t, "<em>fancy</em>", node.HTML())
}

func TestRendererHooksApplyToNewRegistries(t *testing.T) {
	reg := NewEmptyRegistry()
	RegisterRendererHook(func(r *Registry) error {
		return r.Register(Descriptor{
			Type:       "hooked",
			Render:     func(*bytes.Buffer, RenderInput) error { return nil },
			NewPayload: func() Payload { return &TextData{} },
		})
	})
	t.Cleanup(func() {
		globalHookMu.Lock()
		globalHooks = globalHooks[:len(globalHooks)-1]
		globalHookMu.Unlock()
	})

	require.NoError(t, reg.ApplyHooks())
	_, ok := reg.Descriptor("hooked")
	assert.True(t, ok)

	_, ok = NewRegistry().Descriptor("hooked")
	assert.True(t, ok)
}
