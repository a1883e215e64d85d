package render

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/john-holland/heycern-m87hey/internal/lensing"
	"github.com/john-holland/heycern-m87hey/internal/platform/config"
)

// defaultModel is used when no model is configured. It must be a model that
// supports image response modalities.
const defaultModel = "gemini-2.0-flash-exp"

// Renderer produces the base intensity frame for a scene prompt.
type Renderer interface {
	Render(ctx context.Context, prompt string, width, height int) (*lensing.Image, error)
}

// NewFromConfig picks the renderer for the configured mode. Mock mode needs
// no credentials and is the development default.
func NewFromConfig(ctx context.Context, cfg config.RenderConfig) (Renderer, error) {
	if cfg.MockMode {
		return NewProceduralRenderer(), nil
	}
	return NewGeminiRenderer(ctx, cfg.GeminiAPIKey, cfg.Model)
}

// GeminiRenderer generates frames through the Gemini image API.
type GeminiRenderer struct {
	client *genai.Client
	model  string
}

// NewGeminiRenderer creates a renderer backed by the Gemini API.
func NewGeminiRenderer(ctx context.Context, apiKey, model string) (*GeminiRenderer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiRenderer{client: client, model: model}, nil
}

// Render asks the model for an image of the prompt and converts it to an
// intensity frame of the requested dimensions.
func (r *GeminiRenderer) Render(ctx context.Context, prompt string, width, height int) (*lensing.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render dimensions %dx%d: %w", width, height, lensing.ErrShape)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(ModelPrompt(prompt), genai.RoleUser),
	}
	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	data, err := imageData(resp)
	if err != nil {
		return nil, err
	}
	img, err := DecodeGray(data)
	if err != nil {
		return nil, err
	}
	if img.Width() != width || img.Height() != height {
		img, err = resampleGray(img, width, height)
		if err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Close releases the underlying API client.
func (r *GeminiRenderer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// imageData returns the first inline image payload in the response. Models
// often interleave a text caption with the image part.
func imageData(resp *genai.GenerateContentResponse) ([]byte, error) {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, fmt.Errorf("no image part in model response")
}
