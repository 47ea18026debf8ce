// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"log/slog"
	"runtime"

	"github.com/blinklabs-io/headercursor/protocol/chainsync"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMetricsNamespace is the namespace used for relay metrics unless configured otherwise.
const DefaultMetricsNamespace = "headercursor"

// RelayConfig holds configuration for a Relay.
type RelayConfig struct {
	// Logger receives relay log output. Log output is discarded when nil.
	Logger *slog.Logger
	// HeaderReader decodes headers and derives their chain positions.
	// The default reader uses the mainnet Byron epoch length.
	HeaderReader *chainsync.HeaderReader
	// PlainOutput receives RollForward and RollBack commands.
	PlainOutput *OutputPort[ChainSyncCommand]
	// PrefetchedOutput receives RollForwardEx and RollBackEx commands.
	PrefetchedOutput *OutputPort[ChainSyncCommandEx]
	// DecodeWorkers is the number of parallel decode workers for header batches.
	DecodeWorkers int
	// MetricsNamespace prefixes the relay metric names.
	MetricsNamespace string
	// MetricsRegisterer is where relay metrics are registered. Metrics are still
	// collected, but not exported, when it is nil.
	MetricsRegisterer prometheus.Registerer
}

// DefaultRelayConfig returns a RelayConfig with no output ports.
func DefaultRelayConfig() RelayConfig {
	// Scale decode workers with CPU count
	decodeWorkers := runtime.NumCPU() / 4
	if decodeWorkers < 2 {
		decodeWorkers = 2
	}
	return RelayConfig{
		DecodeWorkers:    decodeWorkers,
		MetricsNamespace: DefaultMetricsNamespace,
	}
}

// RelayOption is a functional option for configuring a Relay.
type RelayOption func(*RelayConfig)

// WithConfig applies a complete RelayConfig, replacing all default values.
//
// Note: Options applied after WithConfig will still override the config values.
func WithConfig(config RelayConfig) RelayOption {
	return func(c *RelayConfig) {
		*c = config
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RelayOption {
	return func(c *RelayConfig) {
		c.Logger = logger
	}
}

// WithHeaderReader sets the reader used to decode headers.
func WithHeaderReader(reader *chainsync.HeaderReader) RelayOption {
	return func(c *RelayConfig) {
		c.HeaderReader = reader
	}
}

// WithPlainOutput sets the port that receives RollForward and RollBack commands.
func WithPlainOutput(port *OutputPort[ChainSyncCommand]) RelayOption {
	return func(c *RelayConfig) {
		c.PlainOutput = port
	}
}

// WithPrefetchedOutput sets the port that receives RollForwardEx and RollBackEx commands.
func WithPrefetchedOutput(port *OutputPort[ChainSyncCommandEx]) RelayOption {
	return func(c *RelayConfig) {
		c.PrefetchedOutput = port
	}
}

// WithDecodeWorkers sets the number of decode workers for header batches.
func WithDecodeWorkers(n int) RelayOption {
	return func(c *RelayConfig) {
		if n > 0 {
			c.DecodeWorkers = n
		}
	}
}

// WithMetricsNamespace sets the namespace for relay metrics.
func WithMetricsNamespace(namespace string) RelayOption {
	return func(c *RelayConfig) {
		c.MetricsNamespace = namespace
	}
}

// WithMetricsRegisterer sets the registerer for relay metrics.
func WithMetricsRegisterer(reg prometheus.Registerer) RelayOption {
	return func(c *RelayConfig) {
		c.MetricsRegisterer = reg
	}
}
