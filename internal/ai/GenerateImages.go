package ai

import (
	"context"
	"errors"
	"fmt"

	"site_designer_server/internal/types"
	"site_designer_server/internal/utils"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// GenerateImages requests one image per prompt for the first MaxImages prompts.
// Calls run one after another in prompt order; the first failure aborts the batch.
func (g *Generator) GenerateImages(ctx context.Context, imagePrompts []string) ([]string, error) {
	if len(imagePrompts) > MaxImages {
		imagePrompts = imagePrompts[:MaxImages]
	}

	images := make([]string, 0, len(imagePrompts))
	if len(imagePrompts) == 0 {
		return images, nil
	}
	if g.images == nil {
		return nil, types.NewDomainError(types.ErrCodeInternal, "no image generator configured", nil)
	}

	logger := zerolog.Ctx(ctx)
	for i, imagePrompt := range imagePrompts {
		url, err := g.images.GenerateImage(ctx, imagePrompt)
		if err != nil {
			logger.Error().Err(err).
				Int("slot", i+1).
				Str("reason", utils.ClassifyUpstreamError(err)).
				Msg("image generation failed")
			return nil, fmt.Errorf("image %d of %d: %w", i+1, len(imagePrompts), err)
		}
		logger.Debug().Int("slot", i+1).Msg("image generated")
		images = append(images, url)
	}

	return images, nil
}

// OpenAIImager generates images through the OpenAI images endpoint.
type OpenAIImager struct {
	client  *openai.Client
	model   string
	size    string
	quality string
}

func NewOpenAIImager(client *openai.Client, model, size, quality string) *OpenAIImager {
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}
	if quality == "" {
		quality = openai.CreateImageQualityStandard
	}
	return &OpenAIImager{client: client, model: model, size: size, quality: quality}
}

// GenerateImage asks for exactly one image and returns its URL.
func (o *OpenAIImager) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          o.model,
		N:              1,
		Size:           o.size,
		Quality:        o.quality,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", types.NewDomainError(types.ErrCodeUpstream, "openai image generation failed", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", types.NewDomainError(types.ErrCodeMalformed, "openai returned no image URL", errors.New("empty image data"))
	}
	return resp.Data[0].URL, nil
}
