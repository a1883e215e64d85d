// Package conditions ingests observing-site weather from the NOAA Climate
// Data Online archive and the National Weather Service forecast API. The
// latest snapshot per source enriches the weekly report with the actual sky
// conditions at the site.
package conditions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
)

// Source identifies an upstream weather provider.
type Source string

const (
	SourceNOAA Source = "noaa"
	SourceNWS  Source = "nws"
)

// ParseSource validates external input naming a provider.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceNOAA, SourceNWS:
		return Source(s), nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown conditions source")
}

// Snapshot is one stored fetch from an upstream weather source. Payload keeps
// the provider's raw JSON so nothing is lost to the typed view.
type Snapshot struct {
	ID        uuid.UUID       `json:"id"`
	Source    Source          `json:"source"`
	Summary   string          `json:"summary"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}
