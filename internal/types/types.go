package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ColorScheme is the three-color palette the model picks for a site.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// SiteDescription represents the structure expected from the LLM for a generated site.
//
// Keys the model returns are kept verbatim and echoed back by MarshalJSON, so
// callers receive the model's object augmented with Images and the filled HTML.
// A key whose JSON type does not match the field (e.g. imagePrompts given as a
// string) leaves the typed field empty but is still echoed back.
type SiteDescription struct {
	Title        string
	Description  string
	Sections     []string
	ColorScheme  *ColorScheme
	ImagePrompts []string
	HTML         string

	// Images holds one URL per completed image call, index-aligned with placeholder-N.
	Images []string

	raw map[string]json.RawMessage
}

var errNotAnObject = errors.New("site description is not a JSON object")

func (s *SiteDescription) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotAnObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	*s = SiteDescription{raw: raw}
	decodeField(raw, "title", &s.Title)
	decodeField(raw, "description", &s.Description)
	decodeField(raw, "sections", &s.Sections)
	decodeField(raw, "html", &s.HTML)

	if rawScheme, ok := raw["colorScheme"]; ok {
		var scheme ColorScheme
		if json.Unmarshal(rawScheme, &scheme) == nil && !isNull(rawScheme) {
			s.ColorScheme = &scheme
		}
	}

	if rawPrompts, ok := raw["imagePrompts"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(rawPrompts, &items) == nil {
			s.ImagePrompts = make([]string, 0, len(items))
			for _, item := range items {
				s.ImagePrompts = append(s.ImagePrompts, promptText(item))
			}
		}
	}

	return nil
}

func (s SiteDescription) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.raw)+8)
	for key, value := range s.raw {
		out[key] = value
	}

	// Keys the model sent win over typed fields so they echo back verbatim.
	setDefault := func(key string, value any, present bool) {
		if _, echoed := out[key]; !echoed && present {
			out[key] = value
		}
	}
	setDefault("title", s.Title, s.Title != "")
	setDefault("description", s.Description, s.Description != "")
	setDefault("sections", s.Sections, s.Sections != nil)
	setDefault("colorScheme", s.ColorScheme, s.ColorScheme != nil)
	setDefault("imagePrompts", s.ImagePrompts, s.ImagePrompts != nil)

	images := s.Images
	if images == nil {
		images = []string{}
	}
	out["images"] = images
	out["html"] = s.HTML

	return json.Marshal(out)
}

// Fields returns the top-level keys the model produced.
func (s *SiteDescription) Fields() []string {
	keys := make([]string, 0, len(s.raw))
	for key := range s.raw {
		keys = append(keys, key)
	}
	return keys
}

func decodeField(raw map[string]json.RawMessage, key string, dst any) {
	value, ok := raw[key]
	if !ok || isNull(value) {
		return
	}
	// Type mismatches leave dst at its zero value.
	_ = json.Unmarshal(value, dst)
}

func isNull(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}

// promptText turns one imagePrompts entry into the text sent to the image model.
// Non-string entries are passed along as their JSON text.
func promptText(item json.RawMessage) string {
	var text string
	if err := json.Unmarshal(item, &text); err == nil {
		return text
	}
	return strings.TrimSpace(string(item))
}
