package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteDescription_UnmarshalKnownFields(t *testing.T) {
	raw := `{
		"title": "Loft Coffee",
		"description": "A cozy coffee shop",
		"sections": ["hero", "menu", "contact"],
		"colorScheme": {"primary": "#1f1410", "secondary": "#6f4e37", "accent": "#f5deb3"},
		"imagePrompts": ["latte art", "loft interior", "roasted beans", "barista"],
		"html": "<img src=\"placeholder-1\">"
	}`

	var site SiteDescription
	require.NoError(t, json.Unmarshal([]byte(raw), &site))

	assert.Equal(t, "Loft Coffee", site.Title)
	assert.Equal(t, "A cozy coffee shop", site.Description)
	assert.Equal(t, []string{"hero", "menu", "contact"}, site.Sections)
	require.NotNil(t, site.ColorScheme)
	assert.Equal(t, ColorScheme{Primary: "#1f1410", Secondary: "#6f4e37", Accent: "#f5deb3"}, *site.ColorScheme)
	assert.Equal(t, []string{"latte art", "loft interior", "roasted beans", "barista"}, site.ImagePrompts)
	assert.Equal(t, `<img src="placeholder-1">`, site.HTML)
	assert.ElementsMatch(t, []string{"title", "description", "sections", "colorScheme", "imagePrompts", "html"}, site.Fields())
}

func TestSiteDescription_MismatchedTypes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		prompts []string
		title   string
		scheme  bool
	}{
		{
			name:    "Image prompts as a string",
			raw:     `{"title": "T", "imagePrompts": "one big prompt"}`,
			prompts: nil,
			title:   "T",
		},
		{
			name:    "Image prompts with non-string entries",
			raw:     `{"imagePrompts": ["sunrise", 42, {"subject": "cat"}]}`,
			prompts: []string{"sunrise", "42", `{"subject": "cat"}`},
		},
		{
			name:    "Title as a number",
			raw:     `{"title": 7, "imagePrompts": []}`,
			prompts: []string{},
			title:   "",
		},
		{
			name:   "Null color scheme",
			raw:    `{"colorScheme": null}`,
			scheme: false,
		},
		{
			name:   "Partial color scheme",
			raw:    `{"colorScheme": {"primary": "#000"}}`,
			scheme: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var site SiteDescription
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &site))

			assert.Equal(t, tt.prompts, site.ImagePrompts)
			assert.Equal(t, tt.title, site.Title)
			assert.Equal(t, tt.scheme, site.ColorScheme != nil)
		})
	}
}

func TestSiteDescription_RejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[1, 2]`, `"text"`, `42`} {
		var site SiteDescription
		err := json.Unmarshal([]byte(raw), &site)
		assert.Error(t, err, raw)
	}
}

func TestSiteDescription_MarshalEchoesModelObject(t *testing.T) {
	raw := `{"title": "Loft", "imagePrompts": "not a list", "tagline": "Fresh daily", "meta": {"lang": "en"}, "html": "<img src=\"placeholder-1\">"}`

	var site SiteDescription
	require.NoError(t, json.Unmarshal([]byte(raw), &site))
	site.Images = []string{"https://img.example/1.png"}
	site.HTML = `<img src="https://img.example/1.png">`

	out, err := json.Marshal(site)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))

	assert.Equal(t, "Loft", got["title"])
	assert.Equal(t, "not a list", got["imagePrompts"])
	assert.Equal(t, "Fresh daily", got["tagline"])
	assert.Equal(t, map[string]any{"lang": "en"}, got["meta"])
	assert.Equal(t, []any{"https://img.example/1.png"}, got["images"])
	assert.Equal(t, `<img src="https://img.example/1.png">`, got["html"])
}

func TestSiteDescription_MarshalEmpty(t *testing.T) {
	out, err := json.Marshal(&SiteDescription{})
	require.NoError(t, err)

	assert.JSONEq(t, `{"images": [], "html": ""}`, string(out))
}

func TestSiteDescription_MarshalBuiltInCode(t *testing.T) {
	site := SiteDescription{
		Title:        "Built",
		Sections:     []string{"hero"},
		ColorScheme:  &ColorScheme{Primary: "#111", Secondary: "#222", Accent: "#333"},
		ImagePrompts: []string{"a"},
		Images:       []string{"u"},
		HTML:         "<p>hi</p>",
	}

	out, err := json.Marshal(site)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"title": "Built",
		"sections": ["hero"],
		"colorScheme": {"primary": "#111", "secondary": "#222", "accent": "#333"},
		"imagePrompts": ["a"],
		"images": ["u"],
		"html": "<p>hi</p>"
	}`, string(out))
}

func TestDomainError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewDomainError(ErrCodeUpstream, "text generation failed", cause)

	assert.Equal(t, "UPSTREAM_ERROR: text generation failed: dial tcp: timeout", err.Error())
	assert.ErrorIs(t, err, cause)

	var target *DomainError
	require.ErrorAs(t, error(err), &target)
	assert.Equal(t, ErrCodeUpstream, target.Code)

	assert.Equal(t, "MALFORMED_RESPONSE: empty", NewDomainError(ErrCodeMalformed, "empty", nil).Error())
}
