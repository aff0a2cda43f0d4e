package widgets

import (
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSSVariables(t *testing.T) {
	manifest := &theme.Manifest{
		Name: "acme",
		Tokens: map[string]string{
			"brand":         "#123456",
			"color.surface": "#fff",
			"--radius":      "4px",
			"empty":         " ",
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"color.surface": "#000"}},
		},
	}

	vars := CSSVariables(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest})
	assert.Equal(t, Style{
		"--brand":         "#123456",
		"--color-surface": "#000",
		"--radius":        "4px",
	}, vars)

	assert.Nil(t, CSSVariables(nil))
	assert.Nil(t, CSSVariables(&theme.Selection{}))
}

func TestManifestSelectorFallsBackToDefault(t *testing.T) {
	base := &theme.Manifest{Name: "base"}
	modern := &theme.Manifest{Name: "modern"}
	selector := ManifestSelector{"default": base, "modern": modern}

	selection, err := selector.Select("modern", "primary")
	require.NoError(t, err)
	assert.Same(t, modern, selection.Manifest)

	selection, err = selector.Select("minimal", "primary")
	require.NoError(t, err)
	assert.Same(t, base, selection.Manifest)
	assert.Equal(t, "minimal", selection.Theme)

	_, err = ManifestSelector{"modern": modern}.Select("minimal", "primary")
	assert.Error(t, err)
}

type countingSelector struct {
	calls int
	inner ManifestSelector
}

func (s *countingSelector) Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.inner.Select(name, variant, opts...)
}

func TestThemeTokensAreCached(t *testing.T) {
	selector := &countingSelector{inner: ManifestSelector{"default": {Tokens: map[string]string{"brand": "red"}}}}
	tokens := newThemeTokens(selector)
	for i := 0; i < 3; i++ {
		style, err := tokens.style(Hints{Theme: ThemeDefault, Variant: VariantPrimary})
		require.NoError(t, err)
		assert.Equal(t, "red", style["--brand"])
	}
	assert.Equal(t, 1, selector.calls)

	assert.Nil(t, newThemeTokens(nil))
}
