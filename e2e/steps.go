package e2e

import (
	"github.com/cucumber/godog"

	"github.com/john-holland/heycern-m87hey/e2e/steps/admin"
	"github.com/john-holland/heycern-m87hey/e2e/steps/common"
	"github.com/john-holland/heycern-m87hey/e2e/steps/pipeline"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register pipeline-specific steps
	pipeline.RegisterSteps(ctx, tc)

	// Register operations-surface steps
	admin.RegisterSteps(ctx, tc)
}
