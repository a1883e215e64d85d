package lensing

import "fmt"

// Image is a dense 2-D grid of intensities stored row-major. Valid images
// hold only finite, non-negative values; ImageFromRows enforces that at the
// trust boundary, while Set stays unchecked for hot loops.
type Image struct {
	width  int
	height int
	pix    []float64
}

// NewImage returns a zero-filled image of the given dimensions.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image dimensions %dx%d: %w", width, height, ErrShape)
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]float64, width*height),
	}, nil
}

// NewImageFilled returns an image with every pixel set to v.
func NewImageFilled(width, height int, v float64) (*Image, error) {
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	for i := range img.pix {
		img.pix[i] = v
	}
	return img, nil
}

// ImageFromRows builds an image from row slices, validating shape and
// values. All rows must have equal, nonzero length; every value must be
// finite and non-negative.
func ImageFromRows(rows [][]float64) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty image data: %w", ErrShape)
	}
	width := len(rows[0])
	img, err := NewImage(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d pixels, want %d: %w", y, len(row), width, ErrShape)
		}
		for x, v := range row {
			if !isFinite(v) || v < 0 {
				return nil, fmt.Errorf("pixel (%d,%d) value %v: %w", x, y, v, ErrDomain)
			}
			img.pix[y*width+x] = v
		}
	}
	return img, nil
}

// Width returns the number of columns.
func (im *Image) Width() int { return im.width }

// Height returns the number of rows.
func (im *Image) Height() int { return im.height }

// At returns the intensity at column x, row y. Indices must be in bounds.
func (im *Image) At(x, y int) float64 {
	return im.pix[y*im.width+x]
}

// Set writes the intensity at column x, row y. Indices must be in bounds.
func (im *Image) Set(x, y int, v float64) {
	im.pix[y*im.width+x] = v
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	out := &Image{
		width:  im.width,
		height: im.height,
		pix:    make([]float64, len(im.pix)),
	}
	copy(out.pix, im.pix)
	return out
}

// tap reads a pixel, resolving out-of-bounds coordinates to the fill value
// zero. This is the resampling convention, not an error.
func (im *Image) tap(x, y int) float64 {
	if x < 0 || y < 0 || x >= im.width || y >= im.height {
		return 0
	}
	return im.pix[y*im.width+x]
}
