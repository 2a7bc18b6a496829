// Package observability provides the ambient logging and metrics layer
// a [github.com/nanovc/nanovc/pkg/repohandler.RepoHandler] wires around its
// operations. None of it is load-bearing for kernel correctness; a host that
// never calls Init gets a working no-op meter and a plain stderr logger.
package observability

import (
	"log/slog"

	"github.com/nanovc/nanovc/pkg/version"
)

const (
	// defaultServiceName is the default OTel resource service name.
	defaultServiceName = "nanovc"

	// defaultShutdownTimeoutSec is the default flush timeout in seconds.
	defaultShutdownTimeoutSec = 5
)

// Config holds observability configuration for one embedded RepoHandler.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the embedding host, if known.
	ServiceVersion string

	// Environment is the deployment environment label ("production", "dev", ...).
	Environment string

	// LogLevel controls the minimum slog severity emitted by the kernel logger.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output; text otherwise.
	LogJSON bool

	// PrometheusEnabled wires a Prometheus exporter as the meter's reader.
	// When false, metrics are recorded against a no-op meter.
	PrometheusEnabled bool

	// ShutdownTimeoutSec bounds how long Shutdown waits for metrics flush.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config with sensible defaults for zero-config embedding.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		ServiceVersion:     version.Version,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
