package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplosionAdvancesThroughSheetOnce(t *testing.T) {
	ex := NewExplosionState()
	require.True(t, ex.Active)

	// each cell is held for a fixed number of frames
	for i := 0; i < explosionFrameHold; i++ {
		assert.Equal(t, 0, ex.Frame)
		ex.Advance()
	}
	assert.Equal(t, 1, ex.Frame)

	totalCells := ex.Sheet.FramesPerLine * ex.Sheet.NumLines
	for i := 0; i < totalCells*explosionFrameHold; i++ {
		ex.Advance()
	}
	assert.False(t, ex.Active, "playback is one-shot")

	ex.Advance()
	assert.False(t, ex.Active, "a finished playback never restarts")
}

func TestExplosionNilSafe(t *testing.T) {
	var ex *ExplosionState
	assert.NotPanics(t, func() { ex.Advance() })
}

func TestTrailEmitterSpawnsAndAges(t *testing.T) {
	e := NewTrailEmitter(TextureBulletTrail, true, testRand())
	dt := 1.0 / 60.0

	e.Emit(Vec3{0, 0, 10}, Vec3{0, 0, -1}, dt)
	require.Equal(t, 1, len(e.Particles()), "stock rate yields one particle per tick")

	p := e.Particles()[0]
	assert.InDelta(t, 1.0, p.AlphaFraction(), 1e-12)
	assert.Positive(t, p.Vel.Z, "exhaust drifts against the flight direction")

	// particles expire after their time to live
	for i := 0; i < 60; i++ {
		e.Update(dt)
	}
	assert.Empty(t, e.Particles())
}

func TestTrailEmitterCapsParticleCount(t *testing.T) {
	e := NewTrailEmitter(TextureBulletTrail, false, testRand())
	e.Emit(Vec3{}, Vec3{0, 0, -1}, 100.0)
	assert.Equal(t, trailMaxParticles, len(e.Particles()))
}

func TestTrailEmitterNilSafe(t *testing.T) {
	var e *TrailEmitter
	assert.NotPanics(t, func() {
		e.Emit(Vec3{}, Vec3{}, 0.016)
		e.Update(0.016)
	})
	assert.Nil(t, e.Particles())
}
