package quality

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Area names with dedicated rule sections. Areas with other names are
// scored but produce suggestions without concrete changes.
const (
	AreaSpectralAccuracy     = "spectral_accuracy"
	AreaLensingAccuracy      = "lensing_accuracy"
	AreaVisualizationQuality = "visualization_quality"
)

// Rules is the improvement rule file: the areas under review, the per-area
// targets, and the automation policy.
type Rules struct {
	Areas     []Area     `yaml:"improvement_areas"`
	Targets   Targets    `yaml:"improvement_rules"`
	Automated Automation `yaml:"automated_improvements"`
}

// Area is one reviewed aspect of the pipeline, scored from the coverage of
// its target files plus its named metrics.
type Area struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	TargetFiles []string `yaml:"target_files"`
	Metrics     []string `yaml:"metrics"`
}

// Targets holds the per-area improvement targets.
type Targets struct {
	Spectral      SpectralTargets      `yaml:"spectral_accuracy"`
	Lensing       LensingTargets       `yaml:"lensing_accuracy"`
	Visualization VisualizationTargets `yaml:"visualization_quality"`
}

// SpectralTargets are the spectral analysis targets.
type SpectralTargets struct {
	MinWavelengthResolution    float64  `yaml:"min_wavelength_resolution"`
	RequiredAbsorptionFeatures []string `yaml:"required_absorption_features"`
	WavelengthRange            int      `yaml:"wavelength_range"`
}

// LensingTargets are the lensing transform targets.
type LensingTargets struct {
	MinDeflectionAccuracy float64  `yaml:"min_deflection_accuracy"`
	RequiredEffects       []string `yaml:"required_effects"`
}

// VisualizationTargets are the rendered output targets.
type VisualizationTargets struct {
	MinResolution    string   `yaml:"min_resolution"`
	ColorDepth       int      `yaml:"color_depth"`
	RequiredElements []string `yaml:"required_elements"`
}

// Automation is the review policy: when an area needs work and how many
// suggestions one run may raise.
type Automation struct {
	ReviewThreshold       float64 `yaml:"review_threshold"`
	MaxImprovementsPerRun int     `yaml:"max_improvements_per_run"`
	CommitMessageTemplate string  `yaml:"commit_message_template"`
}

// LoadRules reads and validates the improvement rule file.
func LoadRules(path string) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read improvement rules: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse improvement rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("improvement rules %s: %w", path, err)
	}
	return rules, nil
}

// Validate checks the rule file is usable: every area is named, every area
// with a dedicated rule section has its targets filled in, and the
// automation policy is sane.
func (r Rules) Validate() error {
	if len(r.Areas) == 0 {
		return fmt.Errorf("at least one improvement area is required")
	}
	for i, area := range r.Areas {
		if area.Name == "" {
			return fmt.Errorf("improvement area %d has no name", i)
		}
		switch area.Name {
		case AreaSpectralAccuracy:
			if r.Targets.Spectral.MinWavelengthResolution <= 0 {
				return fmt.Errorf("spectral_accuracy targets are missing")
			}
		case AreaLensingAccuracy:
			if r.Targets.Lensing.MinDeflectionAccuracy <= 0 {
				return fmt.Errorf("lensing_accuracy targets are missing")
			}
		case AreaVisualizationQuality:
			if r.Targets.Visualization.MinResolution == "" {
				return fmt.Errorf("visualization_quality targets are missing")
			}
		}
	}
	if r.Automated.ReviewThreshold <= 0 || r.Automated.ReviewThreshold > 1 {
		return fmt.Errorf("review threshold %v must be in (0, 1]", r.Automated.ReviewThreshold)
	}
	if r.Automated.MaxImprovementsPerRun < 1 {
		return fmt.Errorf("max improvements per run %d must be at least 1", r.Automated.MaxImprovementsPerRun)
	}
	return nil
}
