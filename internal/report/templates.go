package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/john-holland/heycern-m87hey/internal/auth"
	"github.com/john-holland/heycern-m87hey/internal/spectral"
)

type weeklyData struct {
	StartDate      string
	EndDate        string
	Improvements   []Improvement
	Spectrometer   SpectrometerStats
	Visualizations VisualizationStats
	License        string
	Attribution    string
	Contact        string
}

type spectralData struct {
	TimePeriod  string
	Checklist   []auth.ChecklistEntry
	KeyFindings []string
	Analysis    spectral.Analysis
	Updates     VisualizationUpdates
}

const weeklyTemplate = `
M87 Gravitational Lensing Project - Weekly Report
{{.StartDate}} to {{.EndDate}}

Project Overview:
----------------
This week's progress in visualizing Earth's history through M87's gravitational lensing.

Improvements Made:
-----------------
{{range $i, $imp := .Improvements}}{{if $i}}
{{end}}- {{$imp.Area}}: {{$imp.Description}}
  Impact: {{$imp.Impact}}{{end}}

Spectrometer Data Analysis:
-------------------------

Resolution: {{.Spectrometer.Resolution}} nm
Temporal Resolution: {{.Spectrometer.TemporalResolution}}
Spatial Resolution: {{.Spectrometer.SpatialResolution}}
Path Points: {{.Spectrometer.PathPoints}}
Interaction Points: {{.Spectrometer.InteractionPoints}}
Tracking Accuracy: {{.Spectrometer.TrackingAccuracy}}%


Visualization Statistics:
-----------------------

Total Visualizations: {{.Visualizations.Total}}
Average Quality Score: {{.Visualizations.AverageQualityScore}}
Resolution: {{.Visualizations.Resolution}}
Color Depth: {{.Visualizations.ColorDepth}}


Data Granularity Metrics:
-----------------------
- Spectral Resolution: {{.Spectrometer.Resolution}} nm
- Temporal Resolution: {{.Spectrometer.TemporalResolution}}
- Spatial Resolution: {{.Spectrometer.SpatialResolution}}

Light Path Tracking:
------------------
- Total Path Points: {{.Spectrometer.PathPoints}}
- Interaction Points: {{.Spectrometer.InteractionPoints}}
- Accuracy: {{.Spectrometer.TrackingAccuracy}}%

Next Steps:
----------
1. Further improve data granularity
2. Enhance light path tracking accuracy
3. Optimize visualization quality

Project Information:
------------------
License: {{.License}}
Attribution: {{.Attribution}}
Contact: {{.Contact}}

Best regards,
M87 Gravitational Lensing Project Team
`

const spectralTemplate = `
Dear PBS SpaceTime Team,

I hope this email finds you well. I'm pleased to share the latest findings from our M87 Gravitational Lensing Project's spectral analysis for the {{.TimePeriod}} period.

Visual Poetry:
------------
In the cosmic dance of light and gravity, we witness Earth's ancient story unfold through M87's gravitational lens. Like light streaming through a celestial prism, each aperture reveals a different facet of our planet's past. The gravitational lens acts as nature's own kaleidoscope, bending and weaving light into a tapestry of time, where each thread tells a story of atmospheric evolution, life's emergence, and Earth's transformation.

The composite image we've captured is not merely a photograph, but a window through time itself. As light from different epochs converges through M87's gravitational field, it creates a symphony of spectral signatures - each one a note in the grand cosmic composition of Earth's history. The resulting visualization is a testament to the beauty of physics and the poetry of spacetime.

Science Community Source API Token Checklist:
{{range $i, $e := .Checklist}}{{if $i}}
{{end}}- {{if $e.Approved}}[x]{{else}}[ ]{{end}} {{$e.Name}} ({{$e.Email}}){{end}}

Key Findings:
------------
{{range $i, $line := .KeyFindings}}{{if $i}}
{{end}}{{$line}}{{end}}

Atmospheric Composition:
----------------------
Primary Gases:
{{range $i, $g := .Analysis.Atmosphere.PrimaryGases}}{{if $i}}
{{end}}- {{$g.Gas}}: {{pct $g.Concentration}} (Confidence: {{pct $g.Confidence}}){{end}}

Conditions:
- Pressure: {{printf "%.3f" .Analysis.Atmosphere.PressureBar}} bars
- Temperature: {{printf "%.1f" .Analysis.Atmosphere.TemperatureK}} K
- Cloud Coverage: {{pct .Analysis.Atmosphere.CloudCoverage}}

Marine Life Analysis:
-------------------
Phytoplankton:
- Concentration: {{pct .Analysis.Marine.Phytoplankton.Concentration}}
- Species Diversity: {{pct .Analysis.Marine.Phytoplankton.SpeciesDiversity}}
{{if .Analysis.Marine.LargePredators.Present}}
Large Marine Predators:
- Species: {{.Analysis.Marine.LargePredators.SpeciesType}}
- Estimated Size: {{.Analysis.Marine.LargePredators.EstimatedSize}}
{{end}}
Coral Reefs:
- Coverage: {{pct .Analysis.Marine.CoralReefs.Coverage}}
- Health: {{pct .Analysis.Marine.CoralReefs.Health}}

Terrestrial Life Analysis:
------------------------
Vegetation:
- Coverage: {{pct .Analysis.Terrestrial.Vegetation.Coverage}}
- Diversity: {{pct .Analysis.Terrestrial.Vegetation.Diversity}}
- Dominant Types: {{join .Analysis.Terrestrial.Vegetation.DominantTypes ", "}}
{{if .Analysis.Terrestrial.LargeHerbivores.Present}}
Large Herbivores:
- Species: {{.Analysis.Terrestrial.LargeHerbivores.SpeciesType}}
- Estimated Size: {{.Analysis.Terrestrial.LargeHerbivores.EstimatedSize}}
{{end}}{{if .Analysis.Terrestrial.Predators.Present}}
Predators:
- Species: {{.Analysis.Terrestrial.Predators.SpeciesType}}
- Estimated Size: {{.Analysis.Terrestrial.Predators.EstimatedSize}}
{{end}}
Unexpected Discoveries:
---------------------
{{range $i, $f := .Analysis.Unexpected}}{{if $i}}
{{end}}- {{title $f.Type}}:
  Description: {{$f.Description}}
  Significance: {{pct $f.Significance}}
  Confidence: {{pct $f.Confidence}}{{end}}

Confidence Assessment:
-------------------
- Atmospheric Analysis: {{pct .Analysis.Confidence.Atmospheric}}
- Marine Life Detection: {{pct .Analysis.Confidence.Marine}}
- Terrestrial Life Detection: {{pct .Analysis.Confidence.Terrestrial}}
- Unexpected Findings: {{pct .Analysis.Confidence.Unexpected}}
- Overall Confidence: {{pct .Analysis.Confidence.Overall}}

Visualization Updates:
-------------------
- Latest composite image has been generated and printed
- Enhanced resolution: 4096x4096 pixels
- Color depth: 32-bit
- Quality score: {{pct .Updates.QualityScore}}
- Gravitational lensing apertures: {{.Updates.Apertures}}
- Light path convergence points: {{.Updates.ConvergencePoints}}
- Spectral integration accuracy: {{pct .Updates.SpectralAccuracy}}

Next Steps:
----------
1. Review the attached spectral analysis report for detailed metrics
2. Check the printed visualization in the PBS SpaceTime office
3. Schedule a team discussion for any significant findings
4. Consider potential follow-up observations for areas of interest
5. Contemplate the cosmic poetry of light's journey through spacetime

The full spectral analysis report and visualization data are available in our shared repository. You can access them at:
[Repository Link]

Best regards,
M87 Gravitational Lensing Project Team

P.S. If you notice any anomalies or have questions about specific findings, please don't hesitate to reach out to our team. Remember, each photon that reaches our sensors has traveled through the fabric of spacetime itself, carrying with it the story of Earth's past.
`

var templateFuncs = template.FuncMap{
	"pct":   formatPct,
	"title": titleWords,
	"join":  strings.Join,
}

var (
	weeklyTmpl   = template.Must(template.New("weekly").Funcs(templateFuncs).Parse(weeklyTemplate))
	spectralTmpl = template.Must(template.New("spectral").Funcs(templateFuncs).Parse(spectralTemplate))
)

func renderWeekly(data weeklyData) (string, error) {
	var buf bytes.Buffer
	if err := weeklyTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render weekly report: %w", err)
	}
	return buf.String(), nil
}

func renderSpectral(data spectralData) (string, error) {
	var buf bytes.Buffer
	if err := spectralTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render spectral report: %w", err)
	}
	return buf.String(), nil
}

// formatPct renders a fraction the way the archive's letters do: multiplied
// out, one decimal place.
func formatPct(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// titleWords turns a snake_case tag into spaced title case.
func titleWords(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// keyFindings builds the letter's highlight list: headline gas levels, life
// detections, and every finding above the significance floor.
func keyFindings(a spectral.Analysis) []string {
	findings := make([]string, 0, 8)

	if gas, ok := findGas(a.Atmosphere.PrimaryGases, "CO2"); ok {
		findings = append(findings, "- Atmospheric CO2 levels: "+formatPct(gas.Concentration))
	}
	if gas, ok := findGas(a.Atmosphere.PrimaryGases, "O2"); ok {
		findings = append(findings, "- Oxygen concentration: "+formatPct(gas.Concentration))
	}

	findings = append(findings, "- Marine phytoplankton concentration: "+formatPct(a.Marine.Phytoplankton.Concentration))
	if a.Marine.LargePredators.Present {
		findings = append(findings, "- Detected large marine predators: "+a.Marine.LargePredators.SpeciesType)
	}

	findings = append(findings, "- Vegetation coverage: "+formatPct(a.Terrestrial.Vegetation.Coverage))
	if a.Terrestrial.LargeHerbivores.Present {
		findings = append(findings, "- Detected large herbivores: "+a.Terrestrial.LargeHerbivores.SpeciesType)
	}

	for _, f := range a.SignificantFindings() {
		findings = append(findings, fmt.Sprintf("- %s (Significance: %s)", f.Description, formatPct(f.Significance)))
	}

	return findings
}

func findGas(gases []spectral.GasAnalysis, name string) (spectral.GasAnalysis, bool) {
	for _, g := range gases {
		if g.Gas == name {
			return g, true
		}
	}
	return spectral.GasAnalysis{}, false
}
