package printqueue

import "context"

// Printer is the device boundary. Ready gates job creation; Print blocks
// until the device has accepted the frame.
type Printer interface {
	Ready(ctx context.Context) bool
	Print(ctx context.Context, job Job) error
	Supplies(ctx context.Context) Supplies
}

// OfficePrinter stands in for the PBS SpaceTime office device, which exposes
// no queue API. It accepts every job and reports full supplies.
type OfficePrinter struct{}

func (OfficePrinter) Ready(context.Context) bool       { return true }
func (OfficePrinter) Print(context.Context, Job) error { return nil }
func (OfficePrinter) Supplies(context.Context) Supplies {
	return Supplies{Paper: true, Ink: true, Toner: true}
}
