package widgets

import (
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// ThemeSelector matches the go-theme selector. When configured, the tokens of
// the selected theme/variant are emitted as CSS variables on widget roots.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// themeTokens resolves and caches CSS variables per theme/variant pair.
type themeTokens struct {
	selector ThemeSelector
	mu       sync.RWMutex
	cache    map[string]Style
}

func newThemeTokens(selector ThemeSelector) *themeTokens {
	if selector == nil {
		return nil
	}
	return &themeTokens{selector: selector, cache: map[string]Style{}}
}

func (t *themeTokens) style(h Hints) (Style, error) {
	if t == nil {
		return nil, nil
	}
	key := string(h.Theme) + "/" + string(h.Variant)
	t.mu.RLock()
	cached, ok := t.cache[key]
	t.mu.RUnlock()
	if ok {
		return cached, nil
	}
	selection, err := t.selector.Select(string(h.Theme), string(h.Variant))
	if err != nil {
		return nil, fmt.Errorf("widgets: select theme %s: %w", key, err)
	}
	vars := CSSVariables(selection)
	t.mu.Lock()
	t.cache[key] = vars
	t.mu.Unlock()
	return vars, nil
}

// CSSVariables flattens the manifest tokens of a selection, with variant
// tokens overriding base tokens, into CSS custom properties.
func CSSVariables(selection *theme.Selection) Style {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	vars := make(Style, len(tokens))
	for key, value := range tokens {
		name := normalizeCSSVariable(key)
		if name == "" || strings.TrimSpace(value) == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + strings.ReplaceAll(name, ".", "-")
}

// ManifestSelector serves go-theme manifests keyed by widget theme name. The
// "default" entry answers for names without a manifest of their own.
type ManifestSelector map[string]*theme.Manifest

// Select implements ThemeSelector.
func (s ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := s[name]
	if !ok || manifest == nil {
		manifest, ok = s[string(ThemeDefault)]
	}
	if !ok || manifest == nil {
		return nil, fmt.Errorf("widgets: no theme manifest for %q", name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}
