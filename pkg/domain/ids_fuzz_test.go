//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseVisualizationID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseVisualizationID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE visualizations;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseVisualizationID(input)

		// Accepted input must round-trip through the canonical form.
		if err == nil {
			roundTrip, err2 := ParseVisualizationID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
		}

		// Non-UTF8 input must be rejected.
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseAllIDs ensures all ID types accept and reject identically.
func FuzzParseAllIDs(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		_, errViz := ParseVisualizationID(input)
		_, errReport := ParseReportID(input)
		_, errJob := ParsePrintJobID(input)
		_, errToken := ParseTokenID(input)

		if errViz == nil {
			if errReport != nil || errJob != nil || errToken != nil {
				t.Error("inconsistent parsing across ID types")
			}
		}
		if errViz != nil {
			if errReport == nil || errJob == nil || errToken == nil {
				t.Error("inconsistent rejection across ID types")
			}
		}
	})
}
