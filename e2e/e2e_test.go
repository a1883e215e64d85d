package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs every feature in features/ against a live server. Start
// the server and the mock upstreams first, then point M87HEY_E2E_URL at it
// and set M87HEY_E2E_ADMIN_TOKEN to the server's M87HEY_ADMIN_TOKEN value.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("M87HEY_E2E_URL")
	if baseURL == "" {
		t.Skip("M87HEY_E2E_URL not set; start the server and mocks, then rerun")
	}

	tc := NewTestContext(baseURL, os.Getenv("M87HEY_E2E_ADMIN_TOKEN"))

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("end to end feature failures")
	}
}
