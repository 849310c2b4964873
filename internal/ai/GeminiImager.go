package ai

import (
	"context"
	"encoding/base64"
	"errors"

	"site_designer_server/internal/types"

	"google.golang.org/genai"
)

const defaultGeminiImageModel = "imagen-3.0-generate-002"

// GeminiImager generates images with Imagen through the Gemini API. Imagen returns
// bytes rather than hosted URLs, so each image comes back as a data: URL.
type GeminiImager struct {
	client *genai.Client
	model  string
}

// NewGeminiImager creates the Imagen client. baseURL may be empty for the public Gemini API.
func NewGeminiImager(ctx context.Context, apiKey, model, baseURL string) (*GeminiImager, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	clientConfig := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, types.NewDomainError(types.ErrCodeInternal, "failed to create gemini client", err)
	}
	if model == "" {
		model = defaultGeminiImageModel
	}
	return &GeminiImager{client: client, model: model}, nil
}

func (g *GeminiImager) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{NumberOfImages: 1})
	if err != nil {
		return "", types.NewDomainError(types.ErrCodeUpstream, "gemini image generation failed", err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
		return "", types.NewDomainError(types.ErrCodeMalformed, "gemini returned no images", errors.New("empty image data"))
	}
	image := resp.GeneratedImages[0].Image
	if image == nil || len(image.ImageBytes) == 0 {
		return "", types.NewDomainError(types.ErrCodeMalformed, "gemini image has no bytes", errors.New("empty image data"))
	}

	return DataURL(image.MIMEType, image.ImageBytes), nil
}

// DataURL encodes raw image bytes for use in an img src attribute.
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
