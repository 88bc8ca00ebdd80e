package resolver

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"doctrine/internal/resolver/metrics"
	"doctrine/pkg/failures"
	"doctrine/pkg/platform/audit"
)

// Service wraps the pure Resolve with observability. The selected
// binding and witness never depend on anything the Service carries; the
// audit event id in particular stays out of the digests.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Emitter
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditEmitter(emitter audit.Emitter) Option {
	return func(s *Service) {
		s.audit = emitter
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func NewService(opts ...Option) *Service {
	svc := &Service{
		tracer: noop.NewTracerProvider().Tracer("doctrine/resolver"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Resolve runs one resolution. The context carries the span only;
// cancellation is not consulted because resolution never blocks.
func (s *Service) Resolve(ctx context.Context, req Request, in Inputs) Response {
	ctx, span := s.tracer.Start(ctx, "resolver.Resolve", trace.WithAttributes(
		attribute.String("resolver.operation", req.Operation),
		attribute.String("resolver.profile", req.ProfileID),
	))
	defer span.End()

	resp := Resolve(req, in)

	span.SetAttributes(
		attribute.String("resolver.result", string(resp.Result)),
		attribute.String("resolver.witness", string(resp.Witness.SemanticDigest)),
	)
	if s.metrics != nil {
		s.metrics.ObserveResolve(string(resp.Result))
		for _, c := range resp.FailureClasses {
			s.metrics.ObserveFailure(string(c))
		}
	}
	event := audit.NewEvent(audit.CategoryGovernance, audit.ActionSiteResolved)
	event.Subject = req.Operation
	event.Profile = req.ProfileID
	event.Decision = string(resp.Result)
	event.Reason = failures.JoinClasses(resp.FailureClasses)
	event.WitnessDigest = string(resp.Witness.SemanticDigest)
	audit.Log(ctx, s.logger, s.audit, event)

	return resp
}
