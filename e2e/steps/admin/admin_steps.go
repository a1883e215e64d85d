package admin

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	POSTWithHeaders(path string, body interface{}, headers map[string]string) error
	GET(path string, headers map[string]string) error
	DELETE(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetAdminToken() string
	SetBearerToken(token string)
	SetTokenID(id string)
	GetTokenID() string
	GetVisualizationID() string
	SetReportID(id string)
	GetReportID() string
}

// RegisterSteps registers operations-surface step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	// Token lifecycle
	ctx.Step(`^I have an operator bearer token$`, steps.haveOperatorBearerToken)
	ctx.Step(`^I issue an operator token for "([^"]*)" with email "([^"]*)"$`, steps.issueOperatorToken)
	ctx.Step(`^I issue an operator token without the admin header$`, steps.issueWithoutAdminHeader)
	ctx.Step(`^I save the bearer token$`, steps.saveBearerToken)
	ctx.Step(`^I revoke the issued token$`, steps.revokeIssuedToken)
	ctx.Step(`^I fetch the access checklist$`, steps.fetchAccessChecklist)
	ctx.Step(`^the checklist should include "([^"]*)"$`, steps.checklistShouldInclude)

	// Reporting
	ctx.Step(`^I run the weekly report for epoch "([^"]*)"$`, steps.runWeeklyReport)
	ctx.Step(`^I save the first report ID$`, steps.saveFirstReportID)
	ctx.Step(`^I fetch the saved report$`, steps.fetchSavedReport)

	// Print queue and quality
	ctx.Step(`^I queue a print job for the saved visualization$`, steps.queuePrintJob)
	ctx.Step(`^I check the printer supplies$`, steps.checkPrinterSupplies)
	ctx.Step(`^I list the print history$`, steps.listPrintHistory)
	ctx.Step(`^I request an improvement review$`, steps.requestImprovementReview)

	// Conditions ETL
	ctx.Step(`^I trigger the conditions ETL$`, steps.triggerConditionsETL)
	ctx.Step(`^I read the latest "([^"]*)" conditions$`, steps.readLatestConditions)
}

type adminSteps struct {
	tc TestContext
}

// haveOperatorBearerToken issues a fresh token through the admin header and
// stores the bearer, so bearer-gated scenarios can start authenticated.
func (s *adminSteps) haveOperatorBearerToken(ctx context.Context) error {
	if err := s.issueOperatorToken(ctx, "e2e operator", "e2e@observatory.example"); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("token issuance returned %d, is M87HEY_E2E_ADMIN_TOKEN set?", status)
	}
	return s.saveBearerToken(ctx)
}

func (s *adminSteps) issueOperatorToken(ctx context.Context, name, email string) error {
	body := map[string]interface{}{
		"name":  name,
		"email": email,
	}
	return s.tc.POSTWithHeaders("/v1/admin/tokens", body, map[string]string{
		"X-Admin-Token": s.tc.GetAdminToken(),
	})
}

func (s *adminSteps) issueWithoutAdminHeader(ctx context.Context) error {
	body := map[string]interface{}{
		"name":  "no header",
		"email": "nobody@observatory.example",
	}
	return s.tc.POST("/v1/admin/tokens", body)
}

func (s *adminSteps) saveBearerToken(ctx context.Context) error {
	bearer, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	tokenID, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.SetBearerToken(fmt.Sprintf("%v", bearer))
	s.tc.SetTokenID(fmt.Sprintf("%v", tokenID))
	return nil
}

func (s *adminSteps) revokeIssuedToken(ctx context.Context) error {
	return s.tc.DELETE("/v1/admin/tokens/"+s.tc.GetTokenID(), map[string]string{
		"X-Admin-Token": s.tc.GetAdminToken(),
	})
}

func (s *adminSteps) fetchAccessChecklist(ctx context.Context) error {
	return s.tc.GET("/v1/admin/tokens/checklist", map[string]string{
		"X-Admin-Token": s.tc.GetAdminToken(),
	})
}

func (s *adminSteps) checklistShouldInclude(ctx context.Context, email string) error {
	checklist, err := s.tc.GetResponseField("checklist")
	if err != nil {
		return err
	}
	entries, ok := checklist.([]interface{})
	if !ok {
		return fmt.Errorf("checklist field is not an array")
	}
	for _, entry := range entries {
		record, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if record["email"] == email {
			return nil
		}
	}
	return fmt.Errorf("checklist has no entry for %q", email)
}

func (s *adminSteps) runWeeklyReport(ctx context.Context, epoch string) error {
	return s.tc.POST("/v1/admin/reports/weekly", map[string]interface{}{
		"period": epoch,
	})
}

func (s *adminSteps) saveFirstReportID(ctx context.Context) error {
	id, err := s.tc.GetResponseField("reports.0.report.id")
	if err != nil {
		return err
	}
	s.tc.SetReportID(fmt.Sprintf("%v", id))
	return nil
}

func (s *adminSteps) fetchSavedReport(ctx context.Context) error {
	return s.tc.GET("/v1/admin/reports/"+s.tc.GetReportID(), nil)
}

func (s *adminSteps) queuePrintJob(ctx context.Context) error {
	return s.tc.POST("/v1/admin/print-jobs", map[string]interface{}{
		"visualization_id": s.tc.GetVisualizationID(),
	})
}

func (s *adminSteps) checkPrinterSupplies(ctx context.Context) error {
	return s.tc.GET("/v1/admin/print-jobs/supplies", nil)
}

func (s *adminSteps) listPrintHistory(ctx context.Context) error {
	return s.tc.GET("/v1/admin/print-jobs", nil)
}

func (s *adminSteps) requestImprovementReview(ctx context.Context) error {
	return s.tc.POST("/v1/admin/quality/review", nil)
}

func (s *adminSteps) triggerConditionsETL(ctx context.Context) error {
	return s.tc.POST("/v1/etl/conditions", nil)
}

func (s *adminSteps) readLatestConditions(ctx context.Context, source string) error {
	return s.tc.GET("/v1/conditions/"+source, nil)
}
