package widgets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates a generic payload document against its widget contract.
type ConfigValidator interface {
	Validate(desc Descriptor, payload any) error
}

// JSONSchemaValidator compiles descriptor schemas once and validates payloads.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[WidgetType]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[WidgetType]*jsonschema.Schema),
	}
}

// Validate ensures payload satisfies the descriptor schema. Descriptors
// without a schema accept anything.
func (v *JSONSchemaValidator) Validate(desc Descriptor, payload any) error {
	if len(desc.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(desc)
	if err != nil {
		return err
	}
	normalized, err := normalizeDocument(payload)
	if err != nil {
		return fmt.Errorf("widgets: normalize %s payload: %w", desc.Type, err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("widgets: %s payload failed validation: %w", desc.Type, err)
	}
	return nil
}

// Forget drops the compiled schema for t, e.g. after re-registering it.
func (v *JSONSchemaValidator) Forget(t WidgetType) {
	v.mu.Lock()
	delete(v.compiled, t)
	v.mu.Unlock()
}

func (v *JSONSchemaValidator) schemaFor(desc Descriptor) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[desc.Type]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(desc.Schema)
	if err != nil {
		return nil, fmt.Errorf("widgets: marshal schema %s: %w", desc.Type, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(desc.Type) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("widgets: load schema %s: %w", desc.Type, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("widgets: compile schema %s: %w", desc.Type, err)
	}
	v.mu.Lock()
	v.compiled[desc.Type] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// normalizeDocument round-trips through JSON so typed payloads and YAML/TOML
// values reach the schema as plain JSON values.
func normalizeDocument(payload any) (any, error) {
	switch v := payload.(type) {
	case nil:
		return map[string]any{}, nil
	case json.RawMessage:
		var out any
		if err := json.Unmarshal(v, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(Descriptor, any) error { return nil }
