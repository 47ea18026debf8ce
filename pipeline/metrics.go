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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsSubsystemRelay = "relay"
	labelCommand          = "command"
	labelFamily           = "family"

	familyPlain      = "plain"
	familyPrefetched = "prefetched"
)

// relayMetrics tracks relay activity. Metrics are registered on the configured
// Registerer, or left unregistered when it is nil.
type relayMetrics struct {
	headersDecoded  prometheus.Counter
	decodeErrors    prometheus.Counter
	commandsEmitted *prometheus.CounterVec
}

func newRelayMetrics(namespace string, reg prometheus.Registerer) *relayMetrics {
	factory := promauto.With(reg)
	return &relayMetrics{
		headersDecoded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystemRelay,
			Name:      "headers_decoded_total",
			Help:      "the number of chain-sync headers decoded",
		}),
		decodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystemRelay,
			Name:      "decode_errors_total",
			Help:      "the number of chain-sync headers that failed to decode",
		}),
		commandsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystemRelay,
			Name:      "commands_emitted_total",
			Help:      "the number of commands sent downstream",
		}, []string{labelFamily, labelCommand}),
	}
}

func (m *relayMetrics) HeaderDecoded() {
	m.headersDecoded.Inc()
}

func (m *relayMetrics) DecodeError() {
	m.decodeErrors.Inc()
}

func (m *relayMetrics) CommandEmitted(family string, kind CommandKind) {
	m.commandsEmitted.With(prometheus.Labels{
		labelFamily:  family,
		labelCommand: kind.String(),
	}).Inc()
}
