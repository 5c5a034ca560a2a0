package game

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics counts simulation events through the OpenTelemetry metric API.
// It uses the global meter provider, so everything here is a no-op unless
// the embedding application installs an SDK.
type Metrics struct {
	bulletsSpawned metric.Int64Counter
	hits           metric.Int64Counter
	misses         metric.Int64Counter
	unitsDestroyed metric.Int64Counter
	frames         metric.Int64Counter
}

// NewMetrics registers the simulation counters
func NewMetrics() *Metrics {
	meter := otel.Meter("github.com/DmitryAstafyev/ceelaxy/game")
	m := &Metrics{}
	m.bulletsSpawned, _ = meter.Int64Counter("ceelaxy.bullets.spawned")
	m.hits, _ = meter.Int64Counter("ceelaxy.hits")
	m.misses, _ = meter.Int64Counter("ceelaxy.misses")
	m.unitsDestroyed, _ = meter.Int64Counter("ceelaxy.units.destroyed")
	m.frames, _ = meter.Int64Counter("ceelaxy.frames")
	return m
}

func (m *Metrics) addBulletsSpawned(n int64) {
	if m == nil || m.bulletsSpawned == nil {
		return
	}
	m.bulletsSpawned.Add(context.Background(), n)
}

func (m *Metrics) addHits(n int64) {
	if m == nil || m.hits == nil {
		return
	}
	m.hits.Add(context.Background(), n)
}

func (m *Metrics) addMisses(n int64) {
	if m == nil || m.misses == nil {
		return
	}
	m.misses.Add(context.Background(), n)
}

func (m *Metrics) addUnitsDestroyed(n int64) {
	if m == nil || m.unitsDestroyed == nil {
		return
	}
	m.unitsDestroyed.Add(context.Background(), n)
}

func (m *Metrics) addFrame() {
	if m == nil || m.frames == nil {
		return
	}
	m.frames.Add(context.Background(), 1)
}
