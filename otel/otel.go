package otel

import (
	"context"

	promclient "github.com/prometheus/client_golang/prometheus"
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	config "github.com/jvjruiz/schedule-bot/config"
)

type MeterProvider = sdkmetric.MeterProvider

//go:generate mockgen -source=otel.go -destination=../tests/mocks/otel.go -package=mocks
type OpenTelemetry interface {
	Init(config config.Config) error
	RecordActivity(ctx context.Context, channel string, activityType string)
	RecordSignin(ctx context.Context, channel string)
	RecordEventOutcome(ctx context.Context, created bool)
}

type OpenTelemetryImpl struct {
	meterProvider *MeterProvider
	registry      *promclient.Registry
	// Conversation counters
	activityCounter metric.Int64Counter
	signinCounter   metric.Int64Counter
	createdCounter  metric.Int64Counter
	failedCounter   metric.Int64Counter
}

func (o *OpenTelemetryImpl) Init(config config.Config) error {
	// Metrics are pulled, not pushed: the exporter registers against a
	// Prometheus registry served on /metrics.
	o.registry = promclient.NewRegistry()
	metricExporter, err := promexporter.New(promexporter.WithRegisterer(o.registry))
	if err != nil {
		return err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(metricExporter),
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.ApplicationName),
		)),
	)

	// Set as global provider and store locally
	otel.SetMeterProvider(mp)
	o.meterProvider = mp

	meter := mp.Meter("schedule-bot")

	var errs []error
	o.activityCounter, err = meter.Int64Counter(
		"bot.activities.received",
		metric.WithDescription("Number of activities received on the webhook"),
	)
	errs = append(errs, err)

	o.signinCounter, err = meter.Int64Counter(
		"bot.signins.completed",
		metric.WithDescription("Number of completed Google sign-ins"),
	)
	errs = append(errs, err)

	o.createdCounter, err = meter.Int64Counter(
		"bot.events.created",
		metric.WithDescription("Number of calendar events created"),
	)
	errs = append(errs, err)

	o.failedCounter, err = meter.Int64Counter(
		"bot.events.failed",
		metric.WithDescription("Number of calendar event submissions that failed"),
	)
	errs = append(errs, err)

	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	return nil
}

// Registry exposes the Prometheus registry for the /metrics handler.
func (o *OpenTelemetryImpl) Registry() *promclient.Registry {
	return o.registry
}

func (o *OpenTelemetryImpl) GetMeter(name string) metric.Meter {
	if o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Meter(name)
}

func (o *OpenTelemetryImpl) RecordActivity(ctx context.Context, channel string, activityType string) {
	if o.activityCounter == nil {
		return // Not initialized
	}

	o.activityCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("type", activityType),
	))
}

func (o *OpenTelemetryImpl) RecordSignin(ctx context.Context, channel string) {
	if o.signinCounter == nil {
		return // Not initialized
	}

	o.signinCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
	))
}

func (o *OpenTelemetryImpl) RecordEventOutcome(ctx context.Context, created bool) {
	if created {
		if o.createdCounter != nil {
			o.createdCounter.Add(ctx, 1)
		}
		return
	}
	if o.failedCounter != nil {
		o.failedCounter.Add(ctx, 1)
	}
}
