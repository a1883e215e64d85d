// Package render turns an epoch description and its lensed spectrum into a
// finished visualization frame. The Gemini-backed renderer asks the image
// model for a base frame; the procedural renderer fabricates one locally so
// development and tests run without credentials. Both feed the same
// spectrum-guided enhancement and PNG encoding.
package render

import (
	"fmt"
	"strings"

	"github.com/john-holland/heycern-m87hey/internal/epoch"
)

// BuildPrompt assembles the scene prompt for an epoch. Gases render in
// catalog order as whole-atmosphere percentages with one decimal.
func BuildPrompt(description string, atmosphere []epoch.GasFraction) string {
	gases := make([]string, 0, len(atmosphere))
	for _, g := range atmosphere {
		gases = append(gases, fmt.Sprintf("%s: %.1f%%", g.Gas, g.Fraction*100))
	}
	return fmt.Sprintf("%s as seen through the gravitational lensing effect of the M87 black hole. "+
		"Atmospheric composition: %s. "+
		"The image should show accurate spectral data and astronomical features, "+
		"with visible atmospheric effects and surface characteristics appropriate for this time period.",
		description, strings.Join(gases, ", "))
}

// ModelPrompt wraps a scene prompt in the quality preamble sent to the image
// model.
func ModelPrompt(prompt string) string {
	return fmt.Sprintf("high quality astronomical visualization of %s, detailed, scientific, accurate", prompt)
}
