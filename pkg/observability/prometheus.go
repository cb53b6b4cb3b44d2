package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// promTextfile collects OTel instruments into a private Prometheus registry
// and writes them in the text exposition format, for node_exporter's
// textfile collector or CI artifacts.
type promTextfile struct {
	registry *prometheus.Registry
	reader   sdkmetric.Reader
	path     string
}

// newPromTextfile creates an independent registry so repeated Init calls do
// not conflict on collector registration.
func newPromTextfile(path string) (*promTextfile, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &promTextfile{registry: registry, reader: exporter, path: path}, nil
}

// Write gathers the current metric values and atomically replaces the file.
func (p *promTextfile) Write() error {
	err := prometheus.WriteToTextfile(p.path, p.registry)
	if err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	return nil
}
