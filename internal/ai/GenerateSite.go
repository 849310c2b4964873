package ai

import (
	"context"

	"site_designer_server/internal/types"
	"site_designer_server/internal/utils"

	"github.com/rs/zerolog"
)

// GenerateSite runs the whole pipeline for one request: describe the site, render up
// to MaxImages images one at a time, then fill the placeholder slots in the markup.
// An empty style means the configured default.
func (g *Generator) GenerateSite(ctx context.Context, userPrompt, style string) (*types.SiteDescription, error) {
	if style == "" {
		style = g.opts.DefaultStyle
	}

	logger := zerolog.Ctx(ctx).With().Str("style", style).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Int("prompt_length", len(userPrompt)).Msg("generating site")

	site, err := g.DescribeSite(ctx, userPrompt, style)
	if err != nil {
		return nil, err
	}

	images, err := g.GenerateImages(ctx, site.ImagePrompts)
	if err != nil {
		return nil, err
	}

	html, filled := utils.FillImageSlots(site.HTML, images)
	site.Images = images
	site.HTML = html

	logger.Info().
		Str("title", site.Title).
		Int("images", len(images)).
		Int("slots_filled", filled).
		Msg("site generated")

	return site, nil
}
