// Package auth issues and validates the API tokens handed to science
// community members, and keeps the source checklist the outreach reports
// embed.
package auth

import (
	"time"

	id "github.com/john-holland/heycern-m87hey/pkg/domain"
)

// Token is the stored record of an issued API token. The bearer credential
// itself is never persisted; SecretHash keeps a bcrypt hash of its signature
// segment so a leaked credential can be matched to its record.
type Token struct {
	ID         id.TokenID `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	SecretHash string     `json:"-"` // Never serialize - contains bcrypt hash
	Service    bool       `json:"service"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// Active reports whether the token is usable at the given instant.
func (t Token) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// IssueRequest is the body of the token issuance endpoint. Name is optional;
// a missing name is derived from the email address.
type IssueRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service bool   `json:"service"`
}

// IssuedToken couples the stored record with the bearer credential. The
// credential is returned exactly once, at issuance.
type IssuedToken struct {
	Token
	Bearer string `json:"token"`
}

// ChecklistEntry is one row of the science community source checklist.
type ChecklistEntry struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Approved bool   `json:"approved"`
}

// ChecklistResponse wraps the checklist for the HTTP layer.
type ChecklistResponse struct {
	Checklist []ChecklistEntry `json:"checklist"`
	Count     int              `json:"count"`
}

// communityRoster lists the members the outreach report tracks. Service
// accounts are pre-approved; individual members show as approved once an
// active token exists for their address.
var communityRoster = []ChecklistEntry{
	{Name: "John Holland", Email: "john.gebhard.holland@gmail.com"},
	{Name: "Jane Doe", Email: "jane@example.com"},
	{Name: "Project Service Account", Email: "service@project.org", Approved: true},
}
