package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Clock is the process start reference. Trace offsets are measured from it.
type Clock struct {
	start time.Time
}

// NewClock captures the current instant as the process start.
func NewClock() Clock {
	return Clock{start: time.Now()}
}

// Offset returns the time elapsed between process start and t.
func (c Clock) Offset(t time.Time) time.Duration {
	return t.Sub(c.start)
}

// Record describes one handler invocation.
type Record struct {
	RequestID string
	Offset    time.Duration
	Component string
	Operation string
	Duration  time.Duration
	Failed    bool
}

// Tracer emits one Record per traced operation, as a log line, an
// OpenTelemetry span and a latency sample.
type Tracer struct {
	clock   Clock
	logger  *zap.Logger
	tracer  trace.Tracer
	latency metric.Float64Histogram
	now     func() time.Time
}

// NewTracer creates a tracer bound to clock. Spans go to the process
// tracer provider and samples to the global meter provider.
func NewTracer(clock Clock, logger *zap.Logger) *Tracer {
	latency, err := otel.Meter("buzzblog").Float64Histogram(
		"buzzblog.handler.duration",
		metric.WithDescription("Handler latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("Failed to create latency histogram", zap.Error(err))
	}
	return &Tracer{
		clock:   clock,
		logger:  logger,
		tracer:  SpanTracer(),
		latency: latency,
		now:     time.Now,
	}
}

// Begin starts tracing component.operation for a request. The caller must
// defer End on the returned span.
func (t *Tracer) Begin(ctx context.Context, requestID, component, operation string) (context.Context, *Span) {
	start := t.now()
	ctx, span := t.tracer.Start(ctx, component+"."+operation,
		trace.WithAttributes(attribute.String("request_id", requestID)))
	return ctx, &Span{
		tracer: t,
		ctx:    ctx,
		span:   span,
		start:  start,
		record: Record{
			RequestID: requestID,
			Offset:    t.clock.Offset(start),
			Component: component,
			Operation: operation,
		},
	}
}

// Span is an in-flight traced operation.
type Span struct {
	tracer *Tracer
	ctx    context.Context
	span   trace.Span
	start  time.Time
	record Record
	ended  bool
}

// End emits the record. errp may be nil; when it points to a non-nil error
// the span is marked failed. The error itself is left untouched. Calling End
// more than once has no further effect.
func (s *Span) End(errp *error) {
	if s.ended {
		return
	}
	s.ended = true

	s.record.Duration = s.tracer.now().Sub(s.start)
	var err error
	if errp != nil {
		err = *errp
	}
	s.record.Failed = err != nil

	s.tracer.logger.Info("trace",
		zap.String("request_id", s.record.RequestID),
		zap.Float64("ts_offset", s.record.Offset.Seconds()),
		zap.String("component", s.record.Component),
		zap.String("operation", s.record.Operation),
		zap.Int64("latency_ns", s.record.Duration.Nanoseconds()),
		zap.Bool("failed", s.record.Failed),
	)

	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()

	if s.tracer.latency != nil {
		s.tracer.latency.Record(s.ctx, s.record.Duration.Seconds(), metric.WithAttributes(
			attribute.String("component", s.record.Component),
			attribute.String("operation", s.record.Operation),
			attribute.Bool("failed", s.record.Failed),
		))
	}
}
