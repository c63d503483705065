package e2e

import (
	"github.com/cucumber/godog"

	"govassets/e2e/steps/common"
	"govassets/e2e/steps/realms"
)

// RegisterSteps registers all step definitions from modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	realms.RegisterSteps(ctx, tc)
}
