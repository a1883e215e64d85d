package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/spectral"
	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
)

type ReportHandlerSuite struct {
	suite.Suite
	sender  *recordingSender
	store   *MemoryStore
	service *Service
	router  *chi.Mux
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerSuite))
}

func (s *ReportHandlerSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.sender = &recordingSender{}
	s.store = NewMemoryStore()

	analyzer := spectral.NewAnalyzer(metrics.NewForTesting(), logger)
	s.service = NewService(analyzer, &stubChecklist{entries: rosterChecklist()}, s.store, s.sender, nil, metrics.NewForTesting(), logger, nil)
	s.service.now = func() time.Time { return time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC) }

	s.router = chi.NewRouter()
	NewHandler(s.service, logger).RegisterAdmin(s.router)
}

func (s *ReportHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ReportHandlerSuite) TestRunWeeklyDefaultsPeriod() {
	rec := s.do(http.MethodPost, "/reports/weekly", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var result RunResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.Require().Len(result.Reports, 2)
	s.Equal(2, result.Sent)
	s.Contains(result.Reports[1].Report.Subject, "(cretaceous)")
	s.Empty(result.Reports[0].Report.Body)
}

func (s *ReportHandlerSuite) TestRunWeeklyExplicitPeriod() {
	rec := s.do(http.MethodPost, "/reports/weekly", `{"period":"triassic"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var result RunResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.Require().Len(result.Reports, 2)
	s.Contains(result.Reports[1].Report.Subject, "(triassic)")
}

func (s *ReportHandlerSuite) TestRunWeeklyUnknownPeriod() {
	rec := s.do(http.MethodPost, "/reports/weekly", `{"period":"holocene"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("invalid_input", resp["error"])
}

func (s *ReportHandlerSuite) TestRunWeeklyMalformedBody() {
	rec := s.do(http.MethodPost, "/reports/weekly", "{")
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("bad_request", resp["error"])
}

func (s *ReportHandlerSuite) TestGetReport() {
	result := s.service.RunWeekly(context.Background(), domain.PeriodCretaceous)
	reportID := result.Reports[0].Report.ID

	rec := s.do(http.MethodGet, "/reports/"+reportID.String(), "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var report Report
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Equal(reportID, report.ID)
	s.Equal(KindWeekly, report.Kind)
	s.Contains(report.Body, "M87 Gravitational Lensing Project - Weekly Report")
}

func (s *ReportHandlerSuite) TestGetReportMiss() {
	rec := s.do(http.MethodGet, "/reports/"+domain.NewReportID().String(), "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("not_found", resp["error"])
}

func (s *ReportHandlerSuite) TestGetReportRejectsBadID() {
	rec := s.do(http.MethodGet, "/reports/not-a-uuid", "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}
