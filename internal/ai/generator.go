package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// MaxImages caps the image calls per site; the markup only has three slots.
const MaxImages = 3

const defaultStyle = "modern"

// ImageGenerator produces one image for a prompt and returns a URL the browser can load.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Options configures a Generator. Zero values fall back to the defaults below.
type Options struct {
	TextModel    string
	DefaultStyle string
	// LenientJSON turns unparsable model output into an empty site instead of an error.
	LenientJSON bool
}

type Generator struct {
	client *openai.Client
	images ImageGenerator
	opts   Options
}

// NewClient builds the go-openai client. baseURL may be empty for api.openai.com.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

func NewGenerator(client *openai.Client, images ImageGenerator, opts Options) *Generator {
	if opts.TextModel == "" {
		opts.TextModel = openai.GPT4TurboPreview
	}
	if opts.DefaultStyle == "" {
		opts.DefaultStyle = defaultStyle
	}
	return &Generator{
		client: client,
		images: images,
		opts:   opts,
	}
}

// DefaultStyle returns the style applied when a request omits one.
func (g *Generator) DefaultStyle() string {
	return g.opts.DefaultStyle
}
