package quality

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadShippedRules(t *testing.T) {
	rules, err := LoadRules(filepath.Join("..", "..", "configs", "improvement-rules.yaml"))
	require.NoError(t, err)

	require.Len(t, rules.Areas, 3)
	require.Equal(t, AreaSpectralAccuracy, rules.Areas[0].Name)
	require.Equal(t, AreaLensingAccuracy, rules.Areas[1].Name)
	require.Equal(t, AreaVisualizationQuality, rules.Areas[2].Name)

	require.InDelta(t, 0.01, rules.Targets.Spectral.MinWavelengthResolution, 1e-9)
	require.Equal(t, []string{"CO2", "O2", "H2O", "CH4"}, rules.Targets.Spectral.RequiredAbsorptionFeatures)
	require.Equal(t, 1500, rules.Targets.Spectral.WavelengthRange)
	require.InDelta(t, 0.95, rules.Targets.Lensing.MinDeflectionAccuracy, 1e-9)
	require.Equal(t, "4096x4096", rules.Targets.Visualization.MinResolution)
	require.Equal(t, 32, rules.Targets.Visualization.ColorDepth)

	require.InDelta(t, 0.8, rules.Automated.ReviewThreshold, 1e-9)
	require.Equal(t, 2, rules.Automated.MaxImprovementsPerRun)
	require.Contains(t, rules.Automated.CommitMessageTemplate, "{area}")
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read improvement rules")
}

func TestLoadRulesRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("improvement_areas: ["), 0o600))

	_, err := LoadRules(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse improvement rules")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Rules)
		wantErr string
	}{
		{
			name:    "no areas",
			mutate:  func(r *Rules) { r.Areas = nil },
			wantErr: "at least one improvement area",
		},
		{
			name:    "unnamed area",
			mutate:  func(r *Rules) { r.Areas[1].Name = "" },
			wantErr: "has no name",
		},
		{
			name:    "missing spectral targets",
			mutate:  func(r *Rules) { r.Targets.Spectral = SpectralTargets{} },
			wantErr: "spectral_accuracy targets are missing",
		},
		{
			name:    "missing lensing targets",
			mutate:  func(r *Rules) { r.Targets.Lensing = LensingTargets{} },
			wantErr: "lensing_accuracy targets are missing",
		},
		{
			name:    "missing visualization targets",
			mutate:  func(r *Rules) { r.Targets.Visualization = VisualizationTargets{} },
			wantErr: "visualization_quality targets are missing",
		},
		{
			name:    "zero threshold",
			mutate:  func(r *Rules) { r.Automated.ReviewThreshold = 0 },
			wantErr: "review threshold",
		},
		{
			name:    "threshold above one",
			mutate:  func(r *Rules) { r.Automated.ReviewThreshold = 1.5 },
			wantErr: "review threshold",
		},
		{
			name:    "zero cap",
			mutate:  func(r *Rules) { r.Automated.MaxImprovementsPerRun = 0 },
			wantErr: "max improvements per run",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rules := testRules()
			tc.mutate(&rules)

			err := rules.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateAcceptsUnknownAreaNames(t *testing.T) {
	rules := testRules()
	rules.Areas = append(rules.Areas, Area{Name: "data_freshness", Metrics: []string{"snapshot_age"}})

	require.NoError(t, rules.Validate())
}
