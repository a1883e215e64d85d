package auth

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
	id "github.com/john-holland/heycern-m87hey/pkg/domain"
)

type TokenHandlerSuite struct {
	suite.Suite
	store   *MemoryStore
	manager *Manager
	service *Service
	router  *chi.Mux
}

func TestTokenHandlerSuite(t *testing.T) {
	suite.Run(t, new(TokenHandlerSuite))
}

func (s *TokenHandlerSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.store = NewMemoryStore()
	s.manager = NewManager("test-signing-key", 90*24*time.Hour)
	s.service = NewService(s.store, s.manager, nil, metrics.NewForTesting(), logger)

	s.router = chi.NewRouter()
	NewHandler(s.service, logger).RegisterAdmin(s.router)
}

func (s *TokenHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
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

func (s *TokenHandlerSuite) TestIssueToken() {
	rec := s.do(http.MethodPost, "/tokens", `{"name":"Jane Doe","email":"jane@example.com"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Jane Doe", resp["name"])
	s.Equal("jane@example.com", resp["email"])
	s.NotEmpty(resp["token"])
	s.NotContains(rec.Body.String(), "secret_hash")

	claims, err := s.manager.ValidateToken(resp["token"].(string))
	s.Require().NoError(err)
	s.Equal("jane@example.com", claims.Subject)
}

func (s *TokenHandlerSuite) TestIssueTokenMalformedBody() {
	rec := s.do(http.MethodPost, "/tokens", "{")
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("bad_request", resp["error"])
}

func (s *TokenHandlerSuite) TestIssueTokenInvalidEmail() {
	rec := s.do(http.MethodPost, "/tokens", `{"email":"not-an-email"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("invalid_input", resp["error"])
}

func (s *TokenHandlerSuite) TestChecklist() {
	rec := s.do(http.MethodGet, "/tokens/checklist", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp ChecklistResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(3, resp.Count)
	s.Require().Len(resp.Checklist, 3)
	s.False(resp.Checklist[0].Approved)
	s.True(resp.Checklist[2].Approved)
}

func (s *TokenHandlerSuite) TestRevokeFlipsChecklist() {
	issued, err := s.service.Issue(context.Background(), IssueRequest{Name: "Jane Doe", Email: "jane@example.com"})
	s.Require().NoError(err)

	rec := s.do(http.MethodDelete, "/tokens/"+issued.ID.String(), "")
	s.Require().Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.String())

	entries, err := s.service.Checklist(context.Background())
	s.Require().NoError(err)
	s.False(entries[1].Approved)
}

func (s *TokenHandlerSuite) TestRevokeUnknownToken() {
	rec := s.do(http.MethodDelete, "/tokens/"+id.NewTokenID().String(), "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("not_found", resp["error"])
}

func (s *TokenHandlerSuite) TestRevokeRejectsBadID() {
	rec := s.do(http.MethodDelete, "/tokens/not-a-uuid", "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}
