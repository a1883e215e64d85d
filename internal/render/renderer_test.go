package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/john-holland/heycern-m87hey/internal/platform/config"
)

func TestNewGeminiRenderer_RequiresKey(t *testing.T) {
	_, err := NewGeminiRenderer(context.Background(), "", "gemini-2.0-flash-exp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewFromConfig(t *testing.T) {
	t.Run("mock mode", func(t *testing.T) {
		r, err := NewFromConfig(context.Background(), config.RenderConfig{MockMode: true})
		require.NoError(t, err)
		assert.IsType(t, &ProceduralRenderer{}, r)
	})

	t.Run("gemini mode without key", func(t *testing.T) {
		_, err := NewFromConfig(context.Background(), config.RenderConfig{MockMode: false})
		assert.Error(t, err)
	})
}

func TestImageData(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}

	t.Run("skips caption parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "a caption"},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: payload}},
				}},
			}},
		}

		data, err := imageData(resp)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("no image part", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "text only"}}},
			}},
		}

		_, err := imageData(resp)
		assert.Error(t, err)
	})

	t.Run("empty response", func(t *testing.T) {
		_, err := imageData(&genai.GenerateContentResponse{})
		assert.Error(t, err)
	})
}
