package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

const tracerName = "github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// SubmitOrder records a span and counter around order intake.
func (s *Service) SubmitOrder(ctx context.Context, plan domain.Plan, details domain.Details) (*ports.Submission, error) {
	ctx, span := s.startSpan(ctx, "Service.SubmitOrder", attribute.String("order.plan", string(plan)))
	defer span.End()

	s.logInfo(ctx, "submitting order", slog.String("plan", string(plan)))
	result, err := s.inner.SubmitOrder(ctx, plan, details)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit order", slog.String("plan", string(plan)))
	}
	if result != nil && result.Order != nil {
		s.metrics.recordSubmitted(ctx, result.Order.Plan)
		s.logInfo(ctx, "order submitted",
			slog.String("order.id", result.Order.ID),
			slog.Int("price", result.Order.Price),
			slog.String("delivery_date", result.Order.DeliveryDate),
		)
	}
	return result, nil
}

// ListOrders exposes all orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	s.logInfo(ctx, "listed orders", slog.Int("count", len(result)))
	return result, nil
}

// GetOrder loads an order with its regenerated brief.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, string, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.String("order.id", id))
	defer span.End()

	order, brief, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, "", s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order loaded", slog.String("order.id", id), slog.String("status", string(order.Status)))
	return order, brief, nil
}

// UpdateOrder overwrites the mutable order fields.
func (s *Service) UpdateOrder(ctx context.Context, id string, input ports.UpdateInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateOrder",
		attribute.String("order.id", id),
		attribute.String("order.status", string(input.Status)),
	)
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", id), slog.String("status", string(input.Status)))
	result, err := s.inner.UpdateOrder(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", id))
	}
	s.metrics.recordUpdated(ctx, result.Status)
	s.logInfo(ctx, "order updated", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id string) (string, error) {
	ctx, span := s.startSpan(ctx, "Service.DeleteOrder", attribute.String("order.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id))
	confirmation, err := s.inner.DeleteOrder(ctx, id)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", id))
	return confirmation, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersSubmitted metric.Int64Counter
	ordersUpdated   metric.Int64Counter
	ordersDeleted   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersSubmitted, _ := m.Int64Counter("orders.service.submitted", metric.WithDescription("Number of orders submitted"))
	ordersUpdated, _ := m.Int64Counter("orders.service.updated", metric.WithDescription("Number of orders updated"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{
		ordersSubmitted: ordersSubmitted,
		ordersUpdated:   ordersUpdated,
		ordersDeleted:   ordersDeleted,
	}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, plan domain.Plan) {
	addCounter(ctx, m.ordersSubmitted, 1, attribute.String("order.plan", string(plan)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersUpdated, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.ordersDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
