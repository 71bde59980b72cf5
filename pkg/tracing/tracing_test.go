package tracing

import (
	"context"
	"strings"
	"testing"

	"go.opencensus.io/trace"

	"github.com/promoforge/promoforge/config"
)

func TestInitTracingDisabled(t *testing.T) {
	cfg := &config.TracingConfig{Enabled: false}
	if err := InitTracing(cfg); err != nil {
		t.Fatalf("expected no error when tracing disabled, got %v", err)
	}
}

func TestInitTracingUnsupportedExporter(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:             true,
		ServiceName:         "promoforge-test",
		SamplingProbability: 0.1,
		TraceExporter:       "bogus",
	}
	err := InitTracing(cfg)
	if err == nil {
		t.Fatal("expected error for unsupported trace exporter")
	}
	if !strings.Contains(err.Error(), "unsupported trace exporter") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInitTracingMissingEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		exporter string
	}{
		{"jaeger without endpoint", "jaeger"},
		{"zipkin without endpoint", "zipkin"},
		{"stackdriver without project", "stackdriver"},
		{"datadog without agent", "datadog"},
		{"xray without region", "xray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.TracingConfig{
				Enabled:             true,
				ServiceName:         "promoforge-test",
				SamplingProbability: 0.1,
				TraceExporter:       tt.exporter,
			}
			if err := InitTracing(cfg); err == nil {
				t.Errorf("expected error for %s exporter without settings", tt.exporter)
			}
		})
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-span")
	defer span.End()

	if span == nil {
		t.Fatal("expected a span")
	}
	if got := trace.FromContext(ctx); got != span {
		t.Error("context does not carry the started span")
	}
}

func TestStartSpanWithAttributes(t *testing.T) {
	ctx, span := StartSpanWithAttributes(context.Background(), "test-span",
		trace.StringAttribute("market", "de"))
	defer span.End()

	if span == nil {
		t.Fatal("expected a span")
	}
	if trace.FromContext(ctx) != span {
		t.Error("context does not carry the started span")
	}
}
