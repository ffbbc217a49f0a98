package analyzer

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const library_name = "scraperindex.services.analyzer"

var tracer = otel.Tracer(library_name)
var meter = otel.Meter(library_name)
var verdictCounter, _ = meter.Int64Counter("analyzer.verdicts")

func SetTracerProvider(provider trace.TracerProvider) {
	tracer = provider.Tracer(library_name)
}

func SetMeterProvider(provider metric.MeterProvider) {
	meter = provider.Meter(library_name)
	verdictCounter, _ = meter.Int64Counter("analyzer.verdicts")
}

const (
	report_analyze_repo = "service.analyze-repo"
	report_seed         = "service.seed"
	report_consistency  = "service.consistency"
	report_single_repo  = "service.single-active"
	report_persist      = "dictionary.persist"
)
