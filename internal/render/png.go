package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"math"

	"github.com/john-holland/heycern-m87hey/internal/lensing"
)

// EncodePNG renders an intensity frame as 8-bit grayscale PNG. The frame's
// dynamic range maps onto 0..255; an all-zero frame encodes as black.
func EncodePNG(img *lensing.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode nil image: %w", lensing.ErrShape)
	}

	peak := 0.0
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			if v := img.At(x, y); v > peak {
				peak = v
			}
		}
	}

	gray := image.NewGray(image.Rect(0, 0, img.Width(), img.Height()))
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			v := 0.0
			if peak > 0 {
				v = img.At(x, y) / peak
			}
			gray.SetGray(x, y, color.Gray{Y: uint8(math.Round(v * 255))})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeGray converts encoded image bytes (PNG or JPEG) into an intensity
// frame with luma values in [0, 1].
func DecodeGray(data []byte) (*lensing.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	img, err := lensing.NewImage(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.GrayModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			img.Set(x, y, float64(c.Y)/255)
		}
	}
	return img, nil
}

// resampleGray resizes a frame with bilinear taps over pixel centers. Edge
// taps clamp to the border instead of the zero fill used by the lens
// transform, since a resize has no outside region.
func resampleGray(src *lensing.Image, width, height int) (*lensing.Image, error) {
	out, err := lensing.NewImage(width, height)
	if err != nil {
		return nil, err
	}
	scaleX := float64(src.Width()) / float64(width)
	scaleY := float64(src.Height()) / float64(height)
	for y := 0; y < height; y++ {
		fy := (float64(y)+0.5)*scaleY - 0.5
		for x := 0; x < width; x++ {
			fx := (float64(x)+0.5)*scaleX - 0.5
			out.Set(x, y, clampedBilinear(src, fx, fy))
		}
	}
	return out, nil
}

func clampedBilinear(src *lensing.Image, fx, fy float64) float64 {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		if x >= src.Width() {
			x = src.Width() - 1
		}
		if y >= src.Height() {
			y = src.Height() - 1
		}
		return src.At(x, y)
	}

	top := at(x0, y0)*(1-tx) + at(x0+1, y0)*tx
	bottom := at(x0, y0+1)*(1-tx) + at(x0+1, y0+1)*tx
	return top*(1-ty) + bottom*ty
}
