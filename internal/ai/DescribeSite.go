package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"site_designer_server/internal/ai/prompts"
	"site_designer_server/internal/types"
	"site_designer_server/internal/utils"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// DescribeSite makes the single text-generation call and parses its JSON reply.
// An absent or empty reply yields an empty description.
func (g *Generator) DescribeSite(ctx context.Context, userPrompt, style string) (*types.SiteDescription, error) {
	logger := zerolog.Ctx(ctx)

	req := openai.ChatCompletionRequest{
		Model: g.opts.TextModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.GetSiteDesignerSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompts.GetSiteDesignerUserPrompt(userPrompt, style)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logger.Error().Err(err).
			Str("reason", utils.ClassifyUpstreamError(err)).
			Str("model", g.opts.TextModel).
			Msg("text generation failed")
		return nil, types.NewDomainError(types.ErrCodeUpstream, "text generation failed", err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	if content == "" {
		logger.Warn().Interface("usage", resp.Usage).Msg("text model returned empty content, using empty site")
	}

	site, err := parseSiteDescription(content)
	if err != nil {
		if g.opts.LenientJSON {
			logger.Warn().Err(err).Int("content_length", len(content)).Msg("unparsable site description, using empty site")
			return &types.SiteDescription{}, nil
		}
		logger.Error().Err(err).Str("raw_output", truncate(content, 512)).Msg("unparsable site description")
		return nil, types.NewDomainError(types.ErrCodeMalformed, "text model returned malformed JSON", err)
	}

	logger.Info().
		Strs("fields", site.Fields()).
		Int("image_prompts", len(site.ImagePrompts)).
		Msg("site description parsed")

	return site, nil
}

func parseSiteDescription(content string) (*types.SiteDescription, error) {
	cleanedOutput := strings.TrimSpace(content)
	cleanedOutput = strings.TrimPrefix(cleanedOutput, "```json")
	cleanedOutput = strings.TrimPrefix(cleanedOutput, "```")
	cleanedOutput = strings.TrimSuffix(cleanedOutput, "```")
	cleanedOutput = strings.TrimSpace(cleanedOutput)

	if cleanedOutput == "" {
		return &types.SiteDescription{}, nil
	}

	var site types.SiteDescription
	if err := json.Unmarshal([]byte(cleanedOutput), &site); err != nil {
		return nil, fmt.Errorf("failed to parse LLM JSON output: %w", err)
	}
	return &site, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
