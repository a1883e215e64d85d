package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
)

// Typed IDs prevent cross-entity assignment at compile time. Construct with
// the New* functions; parse external input with the Parse* functions, which
// enforce the invariant that IDs are valid, non-nil UUIDs.
type (
	// VisualizationID identifies a generated visualization artifact.
	VisualizationID uuid.UUID

	// ReportID identifies a generated weekly report.
	ReportID uuid.UUID

	// PrintJobID identifies a queued print job.
	PrintJobID uuid.UUID

	// TokenID identifies an issued science-community API token.
	TokenID uuid.UUID
)

// NewVisualizationID returns a random VisualizationID.
func NewVisualizationID() VisualizationID { return VisualizationID(uuid.New()) }

// NewReportID returns a random ReportID.
func NewReportID() ReportID { return ReportID(uuid.New()) }

// NewPrintJobID returns a random PrintJobID.
func NewPrintJobID() PrintJobID { return PrintJobID(uuid.New()) }

// NewTokenID returns a random TokenID.
func NewTokenID() TokenID { return TokenID(uuid.New()) }

// ParseVisualizationID parses external input into a VisualizationID.
func ParseVisualizationID(s string) (VisualizationID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return VisualizationID{}, err
	}
	return VisualizationID(u), nil
}

// ParseReportID parses external input into a ReportID.
func ParseReportID(s string) (ReportID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ReportID{}, err
	}
	return ReportID(u), nil
}

// ParsePrintJobID parses external input into a PrintJobID.
func ParsePrintJobID(s string) (PrintJobID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return PrintJobID{}, err
	}
	return PrintJobID(u), nil
}

// ParseTokenID parses external input into a TokenID.
func ParseTokenID(s string) (TokenID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return TokenID{}, err
	}
	return TokenID(u), nil
}

func (id VisualizationID) String() string { return uuid.UUID(id).String() }
func (id ReportID) String() string        { return uuid.UUID(id).String() }
func (id PrintJobID) String() string      { return uuid.UUID(id).String() }
func (id TokenID) String() string         { return uuid.UUID(id).String() }

// MarshalText renders IDs in canonical UUID form, so JSON bodies and logs
// never see the raw byte array.
func (id VisualizationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ReportID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id PrintJobID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id TokenID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }

// UnmarshalText parses IDs with the same invariants as the Parse functions.
func (id *VisualizationID) UnmarshalText(b []byte) error {
	parsed, err := ParseVisualizationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ReportID) UnmarshalText(b []byte) error {
	parsed, err := ParseReportID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *PrintJobID) UnmarshalText(b []byte) error {
	parsed, err := ParsePrintJobID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *TokenID) UnmarshalText(b []byte) error {
	parsed, err := ParseTokenID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil reports whether the ID is the zero UUID.
func (id VisualizationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id PrintJobID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id TokenID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the shared parsing invariant at trust boundaries:
// IDs must be valid, non-empty, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}
