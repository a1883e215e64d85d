package render

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/john-holland/heycern-m87hey/internal/lensing"
)

// ProceduralRenderer fabricates a frame locally: a central glow, a photon
// ring, and a starfield seeded from the prompt. The same prompt and
// dimensions always produce the same frame, keeping development runs and
// tests reproducible without model credentials.
type ProceduralRenderer struct{}

// NewProceduralRenderer returns the procedural renderer.
func NewProceduralRenderer() *ProceduralRenderer {
	return &ProceduralRenderer{}
}

// Render draws the frame for the prompt.
func (ProceduralRenderer) Render(_ context.Context, prompt string, width, height int) (*lensing.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render dimensions %dx%d: %w", width, height, lensing.ErrShape)
	}
	img, err := lensing.NewImage(width, height)
	if err != nil {
		return nil, err
	}

	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	extent := math.Min(float64(width), float64(height)) / 2
	ringRadius := 0.55 * extent
	ringWidth := 0.06 * extent
	glowSigma := 0.35 * extent

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := math.Hypot(float64(x)-cx, float64(y)-cy)
			glow := 0.30 * math.Exp(-r*r/(2*glowSigma*glowSigma))
			d := r - ringRadius
			ring := 0.50 * math.Exp(-d*d/(2*ringWidth*ringWidth))
			img.Set(x, y, 0.02+glow+ring)
		}
	}

	rng := rand.New(rand.NewSource(promptSeed(prompt)))
	stars := width * height / 96
	for range stars {
		x := rng.Intn(width)
		y := rng.Intn(height)
		img.Set(x, y, img.At(x, y)+0.25+0.55*rng.Float64())
	}
	return img, nil
}

// promptSeed hashes the prompt so distinct scenes get distinct starfields.
func promptSeed(prompt string) int64 {
	h := fnv.New64a()
	h.Write([]byte(prompt))
	return int64(h.Sum64())
}
