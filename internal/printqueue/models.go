// Package printqueue spools prints of stored visualizations to the office
// printer and watches its supplies.
package printqueue

import (
	"time"

	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
)

// Status is a print job's lifecycle state.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusPrinted Status = "printed"
)

// Job is one spooled print, recorded with the printer settings in effect
// when it was queued.
type Job struct {
	ID         domain.PrintJobID `json:"id"`
	ImagePath  string            `json:"image_path"`
	Status     Status            `json:"status"`
	PaperSize  string            `json:"paper_size"`
	ColorMode  string            `json:"color_mode"`
	Resolution string            `json:"resolution"`
	QueuedAt   time.Time         `json:"queued_at"`
	PrintedAt  *time.Time        `json:"printed_at,omitempty"`
}

// EnqueueRequest asks for a print of one stored visualization.
type EnqueueRequest struct {
	VisualizationID string `json:"visualization_id"`
}

// ListResponse wraps the job history listing.
type ListResponse struct {
	Jobs  []Job `json:"jobs"`
	Count int   `json:"count"`
}

// Supplies reports which consumables the printer still has.
type Supplies struct {
	Paper bool `json:"paper"`
	Ink   bool `json:"ink"`
	Toner bool `json:"toner"`
}

// Stocked reports whether nothing needs a refill.
func (s Supplies) Stocked() bool { return s.Paper && s.Ink && s.Toner }

func (s Supplies) low() []string {
	var low []string
	if !s.Paper {
		low = append(low, "paper")
	}
	if !s.Ink {
		low = append(low, "ink")
	}
	if !s.Toner {
		low = append(low, "toner")
	}
	return low
}

// SuppliesStatus is the supplies check response.
type SuppliesStatus struct {
	Supplies        Supplies `json:"supplies"`
	RefillRequested bool     `json:"refill_requested"`
}
