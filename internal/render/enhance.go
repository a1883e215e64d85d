package render

import (
	"fmt"
	"math"

	"github.com/john-holland/heycern-m87hey/internal/lensing"
)

// enhancementGain scales how strongly the spectrum modulates the frame.
const enhancementGain = 0.1

// EnhanceImage modulates a lensed frame with its transformed spectrum. Each
// row picks the intensity sample at the matching fractional position and is
// scaled by 1 + gain * (sample / peak). A flat zero spectrum leaves the
// frame unchanged. The input frame is not mutated.
func EnhanceImage(img *lensing.Image, spectrum lensing.Spectrum) (*lensing.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("enhance nil image: %w", lensing.ErrShape)
	}
	if err := spectrum.Validate(); err != nil {
		return nil, fmt.Errorf("enhance: %w", err)
	}
	if spectrum.Len() == 0 {
		return nil, fmt.Errorf("enhance with empty spectrum: %w", lensing.ErrShape)
	}

	peak := 0.0
	for _, v := range spectrum.Intensity {
		if v > peak {
			peak = v
		}
	}
	out := img.Clone()
	if peak == 0 {
		return out, nil
	}

	width := img.Width()
	height := img.Height()
	for y := 0; y < height; y++ {
		s := sampleAt(spectrum.Intensity, y, height)
		gain := 1 + enhancementGain*s/peak
		for x := 0; x < width; x++ {
			out.Set(x, y, img.At(x, y)*gain)
		}
	}
	return out, nil
}

// sampleAt linearly interpolates samples onto row position row/(rows-1).
func sampleAt(samples []float64, row, rows int) float64 {
	if len(samples) == 1 || rows == 1 {
		return samples[0]
	}
	pos := float64(row) * float64(len(samples)-1) / float64(rows-1)
	i := int(math.Floor(pos))
	if i >= len(samples)-1 {
		return samples[len(samples)-1]
	}
	t := pos - float64(i)
	return samples[i]*(1-t) + samples[i+1]*t
}
