// Package telemetry records Prometheus metrics and OpenTelemetry spans for
// dialog submissions and image uploads.
//
// A Telemetry value is both a form.Observer and an upload.Reporter:
//
//	tel := telemetry.New(telemetry.WithRegistry(reg))
//	dialog := form.NewController(schema, build, commit, form.WithObserver(tel))
//	decoder := upload.NewDecoder(cfg, upload.WithReporter(tel))
//
// Metrics collected:
//   - eventconnect_form_submissions_total: submits by form and result
//   - eventconnect_form_validation_errors_total: failed fields by form and key
//   - eventconnect_form_submit_duration_seconds: submit latency by form
//   - eventconnect_uploads_total: image decodes by result
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/eventconnect/pkg/form"
	"github.com/vango-dev/eventconnect/pkg/upload"
)

// Default tracer name.
const defaultTracerName = "eventconnect"

// Submit results used as the "result" label.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultAborted  = "aborted"
)

// Config configures Telemetry.
type Config struct {
	// Namespace is the metrics namespace (default: "eventconnect").
	Namespace string

	// Buckets are the histogram buckets for submit duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerProvider resolves the tracer.
	// Default: the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	Logger *slog.Logger
}

// Option configures Telemetry.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "eventconnect",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Telemetry holds the collectors and tracer.
type Telemetry struct {
	submissions      *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	submitDuration   *prometheus.HistogramVec
	uploads          *prometheus.CounterVec

	tracer trace.Tracer
	logger *slog.Logger
}

var (
	_ form.Observer   = (*Telemetry)(nil)
	_ upload.Reporter = (*Telemetry)(nil)
)

// New registers the collectors with the configured registry. Registering
// twice with the same registry panics, as promauto does.
func New(opts ...Option) *Telemetry {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	factory := promauto.With(config.Registry)

	return &Telemetry{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "form_submissions_total",
			Help:      "Total number of dialog submit attempts",
		}, []string{"form", "result"}),

		validationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "form_validation_errors_total",
			Help:      "Total number of failed error keys on rejected submits",
		}, []string{"form", "field"}),

		submitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "form_submit_duration_seconds",
			Help:      "Submit processing duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"form"}),

		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "uploads_total",
			Help:      "Total number of image decodes by result",
		}, []string{"result"}),

		tracer: config.TracerProvider.Tracer(defaultTracerName),
		logger: config.Logger.With("component", "telemetry"),
	}
}

// SubmitStarted opens a "form.submit" span and returns the function that
// closes it with the outcome.
func (t *Telemetry) SubmitStarted(ctx context.Context, formName string, mode form.Mode) (context.Context, func(form.Outcome)) {
	start := time.Now()
	spanCtx, span := t.tracer.Start(ctx, "form.submit",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("form.name", formName),
			attribute.String("form.mode", string(mode)),
		),
	)

	return spanCtx, func(out form.Outcome) {
		defer span.End()

		result := outcomeResult(out)
		t.submissions.WithLabelValues(formName, result).Inc()
		t.submitDuration.WithLabelValues(formName).Observe(time.Since(start).Seconds())

		failed := out.Errors.Failed()
		for _, key := range failed {
			t.validationErrors.WithLabelValues(formName, key).Inc()
		}

		span.SetAttributes(
			attribute.String("form.result", result),
			attribute.StringSlice("form.failed", failed),
		)
		switch result {
		case ResultAccepted:
			span.SetStatus(codes.Ok, "")
		case ResultAborted:
			span.SetStatus(codes.Error, "record builder refused submission")
		}

		t.logger.Debug("submit observed", "form", formName, "mode", mode, "result", result)
	}
}

// UploadFinished counts one image decode.
func (t *Telemetry) UploadFinished(result upload.Result) {
	t.uploads.WithLabelValues(string(result)).Inc()
}

func outcomeResult(out form.Outcome) string {
	switch {
	case out.Accepted:
		return ResultAccepted
	case out.Aborted:
		return ResultAborted
	default:
		return ResultRejected
	}
}
