// Package audit defines the transport-agnostic audit event the kernel
// emits alongside its verdicts. Keep it free of kernel types so stores
// and sinks owned by the calling layer can fan out without importing
// the decision packages.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing downstream.
type EventCategory string

const (
	// CategoryGovernance covers admissibility and resolution verdicts.
	// CI pipelines persist these next to the witness digests they cite.
	CategoryGovernance EventCategory = "governance"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from kernel services to capture a decision. The ID is
// minted per emission and deliberately never participates in witness
// digests: two identical decisions share a digest but not an event id.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	Action    string
	Subject   string
	Profile   string
	Decision  string
	Reason    string
	// WitnessDigest links the event to the content-addressed witness
	// when one was produced.
	WitnessDigest string
}

// Kernel audit actions.
const (
	ActionGateChecked  = "gate_checked"
	ActionSiteResolved = "site_resolved"
)

// Emitter is the port kernel services publish through. Implementations
// belong to the calling layer; the kernel never persists events itself.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(category EventCategory, action string) Event {
	return Event{
		ID:        uuid.NewString(),
		Category:  category,
		Timestamp: time.Now().UTC(),
		Action:    action,
	}
}

// Log emits through the optional emitter and logger, tolerating nil for
// both. Emission failures are logged, never propagated: audit is
// best-effort and must not change a verdict.
func Log(ctx context.Context, logger *slog.Logger, emitter Emitter, event Event) {
	if emitter != nil {
		if err := emitter.Emit(ctx, event); err != nil && logger != nil {
			logger.Warn("audit emit failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
	if logger != nil {
		logger.Info("audit",
			"action", event.Action,
			"subject", event.Subject,
			"decision", event.Decision,
			"reason", event.Reason,
		)
	}
}
