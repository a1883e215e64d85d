package pipeline

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	SetVisualizationID(id string)
	GetVisualizationID() string
}

// RegisterSteps registers lensing pipeline step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &pipelineSteps{tc: tc}

	// Catalog and spectra
	ctx.Step(`^I list the epoch catalog$`, steps.listEpochCatalog)
	ctx.Step(`^the catalog should start at "([^"]*)" and end at "([^"]*)"$`, steps.catalogShouldSpan)
	ctx.Step(`^I request the spectrum for epoch "([^"]*)"$`, steps.requestSpectrum)

	// Visualization generation
	ctx.Step(`^I generate a visualization for epoch "([^"]*)"$`, steps.generateVisualization)
	ctx.Step(`^I save the visualization ID$`, steps.saveVisualizationID)
	ctx.Step(`^I fetch the saved visualization$`, steps.fetchSavedVisualization)
	ctx.Step(`^I list the visualizations$`, steps.listVisualizations)
	ctx.Step(`^I run the evolution batch$`, steps.runEvolutionBatch)
	ctx.Step(`^every evolution entry should carry an artifact$`, steps.everyEntryShouldCarryArtifact)
}

type pipelineSteps struct {
	tc TestContext
}

func (s *pipelineSteps) listEpochCatalog(ctx context.Context) error {
	return s.tc.GET("/v1/epochs", nil)
}

func (s *pipelineSteps) catalogShouldSpan(ctx context.Context, oldest, newest string) error {
	epochs, err := s.tc.GetResponseField("epochs")
	if err != nil {
		return err
	}
	records, ok := epochs.([]interface{})
	if !ok || len(records) == 0 {
		return fmt.Errorf("epochs field is not a non-empty array")
	}
	first, err := periodOf(records[0])
	if err != nil {
		return err
	}
	last, err := periodOf(records[len(records)-1])
	if err != nil {
		return err
	}
	if first != oldest || last != newest {
		return fmt.Errorf("catalog spans %q to %q, expected %q to %q", first, last, oldest, newest)
	}
	return nil
}

func (s *pipelineSteps) requestSpectrum(ctx context.Context, epoch string) error {
	return s.tc.GET("/v1/spectra/"+epoch, nil)
}

func (s *pipelineSteps) generateVisualization(ctx context.Context, epoch string) error {
	return s.tc.POST("/v1/visualizations", map[string]interface{}{
		"period": epoch,
	})
}

func (s *pipelineSteps) saveVisualizationID(ctx context.Context) error {
	id, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.SetVisualizationID(fmt.Sprintf("%v", id))
	return nil
}

func (s *pipelineSteps) fetchSavedVisualization(ctx context.Context) error {
	return s.tc.GET("/v1/visualizations/"+s.tc.GetVisualizationID(), nil)
}

func (s *pipelineSteps) listVisualizations(ctx context.Context) error {
	return s.tc.GET("/v1/visualizations", nil)
}

func (s *pipelineSteps) runEvolutionBatch(ctx context.Context) error {
	return s.tc.POST("/v1/visualizations/evolution", nil)
}

func (s *pipelineSteps) everyEntryShouldCarryArtifact(ctx context.Context) error {
	entries, err := s.tc.GetResponseField("entries")
	if err != nil {
		return err
	}
	records, ok := entries.([]interface{})
	if !ok || len(records) == 0 {
		return fmt.Errorf("entries field is not a non-empty array")
	}
	for i, entry := range records {
		record, ok := entry.(map[string]interface{})
		if !ok {
			return fmt.Errorf("entry %d is not an object", i)
		}
		if errMsg, ok := record["error"]; ok && errMsg != "" {
			return fmt.Errorf("entry %d failed: %v", i, errMsg)
		}
		if record["artifact"] == nil {
			return fmt.Errorf("entry %d has no artifact", i)
		}
	}
	return nil
}

func periodOf(entry interface{}) (string, error) {
	record, ok := entry.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("catalog entry is not an object")
	}
	period, ok := record["period"].(string)
	if !ok {
		return "", fmt.Errorf("catalog entry has no period")
	}
	return period, nil
}
