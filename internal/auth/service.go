package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/john-holland/heycern-m87hey/internal/platform/events"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	id "github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
	"github.com/john-holland/heycern-m87hey/pkg/email"
)

// Service issues and revokes API tokens and assembles the community source
// checklist.
type Service struct {
	store     TokenStore
	manager   *Manager
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the token service.
func NewService(store TokenStore, manager *Manager, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		manager:   manager,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Issue creates a token record and returns it with the signed bearer
// credential. Issuing for an address that already holds a token replaces the
// previous credential.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (IssuedToken, error) {
	addr := strings.ToLower(strings.TrimSpace(req.Email))
	if at := strings.IndexByte(addr, '@'); at <= 0 || at == len(addr)-1 {
		return IssuedToken{}, dErrors.New(dErrors.CodeInvalidInput, "a valid email address is required")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		first, last := email.DeriveNameFromEmail(addr)
		name = first + " " + last
	}

	now := s.now().UTC()
	token := Token{
		ID:        id.NewTokenID(),
		Name:      name,
		Email:     addr,
		Service:   req.Service,
		CreatedAt: now,
		ExpiresAt: now.Add(s.manager.TTL()),
	}

	bearer, err := s.manager.Sign(token)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("issue api token: %w", err)
	}

	token.SecretHash, err = hashBearer(bearer)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("issue api token: %w", err)
	}

	if err := s.store.Save(ctx, token); err != nil {
		return IssuedToken{}, fmt.Errorf("issue api token: %w", err)
	}

	s.metrics.TokensIssued.Inc()
	events.Emit(ctx, s.logger, s.publisher, events.CategoryOperations, "token.issued",
		"token_id", token.ID.String(),
		"email", token.Email,
		"service", token.Service,
	)

	return IssuedToken{Token: token, Bearer: bearer}, nil
}

// Revoke marks a token unusable. Revoked members drop off the approved list
// on the next checklist read.
func (s *Service) Revoke(ctx context.Context, tokenID id.TokenID) error {
	if err := s.store.Revoke(ctx, tokenID, s.now().UTC()); err != nil {
		return err
	}

	events.Emit(ctx, s.logger, s.publisher, events.CategoryOperations, "token.revoked",
		"token_id", tokenID.String(),
	)
	return nil
}

// Checklist merges the standing roster with issued-token state. A member is
// approved when pre-approved on the roster or when an active token exists
// for their address.
func (s *Service) Checklist(ctx context.Context) ([]ChecklistEntry, error) {
	tokens, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list api tokens: %w", err)
	}

	now := s.now()
	activeByEmail := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if token.Active(now) {
			activeByEmail[token.Email] = true
		}
	}

	entries := make([]ChecklistEntry, 0, len(communityRoster))
	rosterEmails := make(map[string]bool, len(communityRoster))
	for _, member := range communityRoster {
		rosterEmails[member.Email] = true
		member.Approved = member.Approved || activeByEmail[member.Email]
		entries = append(entries, member)
	}

	// Members outside the standing roster appear once they hold an active
	// token.
	for _, token := range tokens {
		if rosterEmails[token.Email] || !token.Active(now) {
			continue
		}
		entries = append(entries, ChecklistEntry{Name: token.Name, Email: token.Email, Approved: true})
	}

	return entries, nil
}

// hashBearer hashes the credential's signature segment. Header and payload
// are reconstructable from public claims; only the signature is secret, and
// its encoded form stays under bcrypt's 72-byte input cap.
func hashBearer(bearer string) (string, error) {
	i := strings.LastIndexByte(bearer, '.')
	if i < 0 || i == len(bearer)-1 {
		return "", fmt.Errorf("malformed bearer token")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(bearer[i+1:]), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash token secret: %w", err)
	}
	return string(hashed), nil
}
