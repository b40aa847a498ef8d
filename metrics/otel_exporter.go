package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter            metric.Meter
	statusCountGauge metric.Int64ObservableGauge
	totalBooksGauge  metric.Int64ObservableGauge
	pagesReadGauge   metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"plano-leitura",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.statusCountGauge, err = oe.meter.Int64ObservableGauge(
		"livros.status.count",
		metric.WithDescription("Number of books by reading status"),
		metric.WithUnit("{livros}"),
		metric.WithInt64Callback(oe.observeStatusCounts),
	)
	if err != nil {
		return fmt.Errorf("creating status count gauge: %w", err)
	}

	oe.totalBooksGauge, err = oe.meter.Int64ObservableGauge(
		"livros.total",
		metric.WithDescription("Number of tracked books"),
		metric.WithUnit("{livros}"),
		metric.WithInt64Callback(oe.observeTotalBooks),
	)
	if err != nil {
		return fmt.Errorf("creating total books gauge: %w", err)
	}

	oe.pagesReadGauge, err = oe.meter.Int64ObservableGauge(
		"livros.paginas_lidas",
		metric.WithDescription("Total pages read across all books"),
		metric.WithUnit("{paginas}"),
		metric.WithInt64Callback(oe.observePagesRead),
	)
	if err != nil {
		return fmt.Errorf("creating pages read gauge: %w", err)
	}

	return nil
}

// observeStatusCounts is a callback that reports book counts by status
func (oe *OTelExporter) observeStatusCounts(ctx context.Context, observer metric.Int64Observer) error {
	statusCounts, err := oe.collector.GetStatusCounts(ctx)
	if err != nil {
		return err
	}

	for status, count := range statusCounts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("livro.status", status),
		))
	}

	return nil
}

// observeTotalBooks is a callback that reports the tracked book count
func (oe *OTelExporter) observeTotalBooks(ctx context.Context, observer metric.Int64Observer) error {
	total, err := oe.collector.GetTotalBooks(ctx)
	if err != nil {
		return err
	}

	observer.Observe(total)
	return nil
}

// observePagesRead is a callback that reports the pages-read total
func (oe *OTelExporter) observePagesRead(ctx context.Context, observer metric.Int64Observer) error {
	pages, err := oe.collector.GetPagesRead(ctx)
	if err != nil {
		return err
	}

	observer.Observe(pages)
	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
