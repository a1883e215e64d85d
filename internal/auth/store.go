package auth

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	id "github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// TokenStore persists issued token records. One record exists per email
// address; reissuing for an address replaces the previous credential.
type TokenStore interface {
	Save(ctx context.Context, token Token) error
	Revoke(ctx context.Context, tokenID id.TokenID, at time.Time) error
	List(ctx context.Context) ([]Token, error)
}

// MemoryStore keeps token records in memory. It is the default when Postgres
// is not configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Token
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Token)}
}

func (s *MemoryStore) Save(_ context.Context, token Token) error {
	if token.ID.IsNil() {
		return fmt.Errorf("token id is required")
	}
	if token.Email == "" {
		return fmt.Errorf("token email is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[token.Email] = cloneToken(token)
	return nil
}

// Revoke is idempotent; the first revocation time sticks.
func (s *MemoryStore) Revoke(_ context.Context, tokenID id.TokenID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, token := range s.items {
		if token.ID != tokenID {
			continue
		}
		if token.RevokedAt == nil {
			token.RevokedAt = &at
			s.items[email] = token
		}
		return nil
	}
	return fmt.Errorf("api token %s: %w", tokenID, sentinel.ErrNotFound)
}

func (s *MemoryStore) List(_ context.Context) ([]Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tokens := make([]Token, 0, len(s.items))
	for _, token := range s.items {
		tokens = append(tokens, cloneToken(token))
	}
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].CreatedAt.Equal(tokens[j].CreatedAt) {
			return tokens[i].Email < tokens[j].Email
		}
		return tokens[i].CreatedAt.Before(tokens[j].CreatedAt)
	})
	return tokens, nil
}

func cloneToken(token Token) Token {
	cp := token
	if token.RevokedAt != nil {
		at := *token.RevokedAt
		cp.RevokedAt = &at
	}
	return cp
}

// PostgresStore persists token records in the api_tokens table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed token store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, token Token) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_tokens (id, name, email, secret_hash, service, created_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
		ON CONFLICT (email) DO UPDATE SET
			id          = EXCLUDED.id,
			name        = EXCLUDED.name,
			secret_hash = EXCLUDED.secret_hash,
			service     = EXCLUDED.service,
			created_at  = EXCLUDED.created_at,
			expires_at  = EXCLUDED.expires_at,
			revoked_at  = NULL`,
		uuid.UUID(token.ID), token.Name, token.Email, token.SecretHash,
		token.Service, token.CreatedAt, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save api token: %w", err)
	}
	return nil
}

func (s *PostgresStore) Revoke(ctx context.Context, tokenID id.TokenID, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE api_tokens
		SET revoked_at = COALESCE(revoked_at, $2)
		WHERE id = $1`,
		uuid.UUID(tokenID), at,
	)
	if err != nil {
		return fmt.Errorf("revoke api token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke api token: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("api token %s: %w", tokenID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Token, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, secret_hash, service, created_at, expires_at, revoked_at
		FROM api_tokens
		ORDER BY created_at, email`)
	if err != nil {
		return nil, fmt.Errorf("list api tokens: %w", err)
	}
	defer rows.Close()

	var tokens []Token
	for rows.Next() {
		var token Token
		var tokenID uuid.UUID
		var revokedAt sql.NullTime
		err := rows.Scan(&tokenID, &token.Name, &token.Email, &token.SecretHash,
			&token.Service, &token.CreatedAt, &token.ExpiresAt, &revokedAt)
		if err != nil {
			return nil, fmt.Errorf("scan api token: %w", err)
		}
		token.ID = id.TokenID(tokenID)
		if revokedAt.Valid {
			at := revokedAt.Time
			token.RevokedAt = &at
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list api tokens: %w", err)
	}
	return tokens, nil
}
