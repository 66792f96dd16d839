package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Telemetry emits one OTel log record per classified server event plus two
// instruments: events processed by kind, and the current online player count.
// A nil *Telemetry is valid and does nothing.
type Telemetry struct {
	logger otellog.Logger
	events metric.Int64Counter
	online atomic.Int64
}

// newTelemetry wires OTLP/gRPC log and metric exporters. The returned
// shutdown function flushes both providers.
func newTelemetry(ctx context.Context, cfg TelemetryConfig) (*Telemetry, func(context.Context) error, error) {
	logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithInsecure())
	if err != nil {
		return nil, nil, fmt.Errorf("log exporter: %w", err)
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithInsecure())
	if err != nil {
		loggerProvider.Shutdown(ctx)
		return nil, nil, fmt.Errorf("metric exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(cfg.Interval))),
	)

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), loggerProvider.Shutdown(ctx))
	}

	t := &Telemetry{logger: loggerProvider.Logger(cfg.ServiceName)}
	meter := meterProvider.Meter(cfg.ServiceName)

	t.events, err = meter.Int64Counter("mc_sync.events",
		metric.WithDescription("Server log events processed, by kind"))
	if err != nil {
		shutdown(ctx)
		return nil, nil, fmt.Errorf("events counter: %w", err)
	}

	_, err = meter.Int64ObservableGauge("mc_sync.players_online",
		metric.WithDescription("Players currently online"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(t.online.Load())
			return nil
		}))
	if err != nil {
		shutdown(ctx)
		return nil, nil, fmt.Errorf("online gauge: %w", err)
	}

	return t, shutdown, nil
}

// RecordEvent counts every classification outcome and emits a structured log
// record for the recognized ones.
func (t *Telemetry) RecordEvent(record LogRecord) {
	if t == nil {
		return
	}

	ctx := context.Background()
	t.events.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", record.Kind.String())))

	if record.Kind == RecordUnrecognized {
		return
	}

	var r otellog.Record
	r.SetTimestamp(time.Now())
	r.SetBody(otellog.StringValue(record.Kind.String()))
	r.AddAttributes(otellog.String("player", record.Name))
	if record.Achievement != "" {
		r.AddAttributes(otellog.String("achievement", record.Achievement))
	}
	if record.Body != "" {
		r.AddAttributes(otellog.String("message", record.Body))
	}
	t.logger.Emit(ctx, r)
}

// SetOnline updates the value the players-online gauge observes.
func (t *Telemetry) SetOnline(count int) {
	if t == nil {
		return
	}
	t.online.Store(int64(count))
}
