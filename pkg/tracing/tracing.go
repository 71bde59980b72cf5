// Package tracing bootstraps OpenCensus tracing and metrics with pluggable
// exporters, and wraps the Postgres driver so repository queries show up as
// spans.
package tracing

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/promoforge/promoforge/config"
)

// InitTracing initializes OpenCensus with the given configuration.
func InitTracing(tracingConfig *config.TracingConfig) error {
	if !tracingConfig.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(tracingConfig.SamplingProbability),
	})

	if tracingConfig.TraceExporter != "none" && tracingConfig.TraceExporter != "" {
		if err := initTraceExporter(tracingConfig); err != nil {
			return err
		}
	}

	if tracingConfig.MetricsExporter != "none" && tracingConfig.MetricsExporter != "" {
		if err := initMetricsExporters(tracingConfig); err != nil {
			return err
		}
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.Printf("OpenCensus initialized with trace exporter: %s, metrics exporters: %s",
		tracingConfig.TraceExporter, tracingConfig.MetricsExporter)
	return nil
}

// RegisterPostgresDriver registers an ocsql-wrapped lib/pq driver and
// returns its name. ocsql records a span per query and exposes connection
// pool metrics.
func RegisterPostgresDriver() (string, error) {
	driverName, err := ocsql.Register("postgres", ocsql.WithAllTraceOptions())
	if err != nil {
		return "", fmt.Errorf("failed to register traced postgres driver: %w", err)
	}
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return "", fmt.Errorf("failed to register database views: %w", err)
	}
	return driverName, nil
}

func initTraceExporter(cfg *config.TracingConfig) error {
	switch cfg.TraceExporter {
	case "jaeger":
		return initJaegerExporter(cfg)
	case "zipkin":
		return initZipkinExporter(cfg)
	case "stackdriver":
		return initStackdriverTraceExporter(cfg)
	case "datadog":
		return initDatadogTraceExporter(cfg)
	case "xray":
		return initXRayExporter(cfg)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
}

func initMetricsExporters(cfg *config.TracingConfig) error {
	for _, exporter := range strings.Split(cfg.MetricsExporter, ",") {
		exporter = strings.TrimSpace(exporter)
		if exporter == "" {
			continue
		}

		var err error
		switch exporter {
		case "prometheus":
			err = initPrometheusExporter(cfg)
		case "stackdriver":
			err = initStackdriverMetricsExporter(cfg)
		case "datadog":
			err = initDatadogMetricsExporter(cfg)
		default:
			return fmt.Errorf("unsupported metrics exporter: %s", exporter)
		}
		if err != nil {
			return fmt.Errorf("failed to initialize %s metrics exporter: %w", exporter, err)
		}
	}
	return nil
}

func initJaegerExporter(cfg *config.TracingConfig) error {
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
	}

	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		ServiceName:       cfg.ServiceName,
		Process: jaeger.Process{
			ServiceName: cfg.ServiceName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	trace.RegisterExporter(je)
	return nil
}

func initZipkinExporter(cfg *config.TracingConfig) error {
	if cfg.ZipkinEndpoint == "" {
		return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
	}

	reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
	trace.RegisterExporter(zipkin.NewExporter(reporter, nil))
	return nil
}

func initStackdriverTraceExporter(cfg *config.TracingConfig) error {
	if cfg.StackdriverProjectID == "" {
		return fmt.Errorf("Stackdriver project ID is required for Stackdriver exporter")
	}

	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID: cfg.StackdriverProjectID,
	})
	if err != nil {
		return fmt.Errorf("failed to create Stackdriver exporter: %w", err)
	}

	trace.RegisterExporter(se)
	return nil
}

func initDatadogTraceExporter(cfg *config.TracingConfig) error {
	agentAddr := cfg.DatadogAgentAddress
	if agentAddr == "" {
		agentAddr = cfg.AgentEndpoint
	}
	if agentAddr == "" {
		return fmt.Errorf("Datadog agent address is required for Datadog exporter")
	}

	exporter, err := datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agentAddr,
		StatsAddr: agentAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to create Datadog exporter: %w", err)
	}

	trace.RegisterExporter(exporter)
	return nil
}

func initXRayExporter(cfg *config.TracingConfig) error {
	if cfg.XRayRegion == "" {
		return fmt.Errorf("AWS region is required for X-Ray exporter")
	}

	exporter, err := aws.NewExporter(
		aws.WithRegion(cfg.XRayRegion),
		aws.WithVersion("latest"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS X-Ray exporter: %w", err)
	}

	trace.RegisterExporter(exporter)
	return nil
}

func initPrometheusExporter(cfg *config.TracingConfig) error {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.Printf("Prometheus exporter error: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	view.RegisterExporter(pe)

	if cfg.PrometheusPort > 0 {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", pe)
			addr := fmt.Sprintf(":%d", cfg.PrometheusPort)
			log.Printf("Starting Prometheus metrics server on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
				log.Printf("Failed to start Prometheus metrics server: %v", err)
			}
		}()
	}
	return nil
}

func initStackdriverMetricsExporter(cfg *config.TracingConfig) error {
	if cfg.StackdriverProjectID == "" {
		return fmt.Errorf("Stackdriver project ID is required for Stackdriver metrics exporter")
	}

	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.Printf("Stackdriver metrics exporter error: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Stackdriver metrics exporter: %w", err)
	}

	view.RegisterExporter(se)
	return nil
}

func initDatadogMetricsExporter(cfg *config.TracingConfig) error {
	agentAddr := cfg.DatadogAgentAddress
	if agentAddr == "" {
		agentAddr = cfg.AgentEndpoint
	}
	if agentAddr == "" {
		return fmt.Errorf("Datadog agent address is required for Datadog metrics exporter")
	}

	options := datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agentAddr,
		StatsAddr: agentAddr,
		OnError: func(err error) {
			log.Printf("Datadog metrics exporter error: %v", err)
		},
	}
	if cfg.DatadogAPIKey != "" {
		options.GlobalTags = map[string]interface{}{
			"api_key": cfg.DatadogAPIKey,
		}
	}

	exporter, err := datadog.NewExporter(options)
	if err != nil {
		return fmt.Errorf("failed to create Datadog metrics exporter: %w", err)
	}

	view.RegisterExporter(exporter)
	return nil
}

// StartSpan starts a new span and returns a context carrying it.
func StartSpan(ctx context.Context, name string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, name)
}

// StartSpanWithAttributes starts a new span with attributes attached.
func StartSpanWithAttributes(ctx context.Context, name string, attrs ...trace.Attribute) (context.Context, *trace.Span) {
	ctx, span := trace.StartSpan(ctx, name)
	span.AddAttributes(attrs...)
	return ctx, span
}
