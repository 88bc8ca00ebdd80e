package gate

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"doctrine/internal/gate/metrics"
	"doctrine/internal/world"
	"doctrine/pkg/failures"
	"doctrine/pkg/platform/audit"
)

// Service wraps the pure Run with observability: structured logging,
// verdict metrics, audit emission, and a span per check. The verdict
// itself never depends on anything the Service carries.
type Service[C comparable, V any] struct {
	world   world.World[C, V]
	schemes *SchemeRegistry[C, V]
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Emitter
	tracer  trace.Tracer
}

type Option[C comparable, V any] func(*Service[C, V])

func WithLogger[C comparable, V any](logger *slog.Logger) Option[C, V] {
	return func(s *Service[C, V]) {
		s.logger = logger
	}
}

func WithMetrics[C comparable, V any](m *metrics.Metrics) Option[C, V] {
	return func(s *Service[C, V]) {
		s.metrics = m
	}
}

func WithAuditEmitter[C comparable, V any](emitter audit.Emitter) Option[C, V] {
	return func(s *Service[C, V]) {
		s.audit = emitter
	}
}

func WithTracer[C comparable, V any](tracer trace.Tracer) Option[C, V] {
	return func(s *Service[C, V]) {
		s.tracer = tracer
	}
}

func WithSchemes[C comparable, V any](schemes *SchemeRegistry[C, V]) Option[C, V] {
	return func(s *Service[C, V]) {
		s.schemes = schemes
	}
}

func NewService[C comparable, V any](w world.World[C, V], opts ...Option[C, V]) (*Service[C, V], error) {
	if w == nil {
		return nil, fmt.Errorf("gate service requires a world")
	}
	svc := &Service[C, V]{
		world:   w,
		schemes: DefaultSchemes[C, V](),
		tracer:  noop.NewTracerProvider().Tracer("doctrine/gate"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Check runs one admissibility check. The context carries the span
// only; cancellation is not consulted because checks never block.
func (s *Service[C, V]) Check(ctx context.Context, chk Check[C, V], profile Profile) Result {
	ctx, span := s.tracer.Start(ctx, "gate.Check", trace.WithAttributes(
		attribute.String("gate.kind", string(chk.Kind())),
		attribute.String("gate.profile", profile.ID),
	))
	defer span.End()

	result := RunWithSchemes(s.world, chk, profile, s.schemes)

	span.SetAttributes(
		attribute.Bool("gate.accepted", result.Accepted),
		attribute.Int("gate.failures", len(result.Failures)),
	)
	if s.metrics != nil {
		s.metrics.ObserveCheck(string(chk.Kind()), result.Accepted)
		for _, f := range result.Failures {
			s.metrics.ObserveFailure(string(f.Class))
		}
	}
	if !result.Accepted {
		classes := failures.Classes(result.Failures)
		event := audit.NewEvent(audit.CategoryGovernance, audit.ActionGateChecked)
		event.Subject = string(chk.Kind())
		event.Profile = profile.ID
		event.Decision = "rejected"
		event.Reason = failures.JoinClasses(classes)
		audit.Log(ctx, s.logger, s.audit, event)
	}
	return result
}
