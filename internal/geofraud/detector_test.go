package geofraud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_PlausibleMovement(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	// a few hundred meters over ten minutes, ordinary commute
	prev := Sample{Latitude: -6.2000, Longitude: 106.8160, At: base}
	cur := Sample{Latitude: -6.2030, Longitude: 106.8190, At: base.Add(10 * time.Minute)}

	res := Evaluate(prev, cur)

	assert.False(t, res.Suspicious)
	assert.Less(t, res.SpeedKmh, 10.0)
	assert.Greater(t, res.DistanceKm, 0.0)
}

func TestEvaluate_ImpossibleJump(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	// Jakarta to Bandung (~95 km) in five minutes implies >1000 km/h
	prev := Sample{Latitude: -6.200, Longitude: 106.816, At: base}
	cur := Sample{Latitude: -6.900, Longitude: 107.600, At: base.Add(5 * time.Minute)}

	res := Evaluate(prev, cur)

	assert.True(t, res.Suspicious)
	assert.Greater(t, res.SpeedKmh, 1000.0)
	assert.InDelta(t, 95, res.DistanceKm, 25)
}

func TestEvaluate_NearSimultaneousNeverFlags(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	// same jump as above but within half a second: treated as a retry
	prev := Sample{Latitude: -6.200, Longitude: 106.816, At: base}
	cur := Sample{Latitude: -6.900, Longitude: 107.600, At: base.Add(500 * time.Millisecond)}

	res := Evaluate(prev, cur)

	assert.False(t, res.Suspicious)
	assert.Zero(t, res.SpeedKmh)
}

func TestEvaluate_ExactlyAtThreshold(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	// ~111 km due north takes 8.4 minutes at 800 km/h; give it slightly more
	// time so the speed lands just under the threshold
	prev := Sample{Latitude: -6.0, Longitude: 106.8, At: base}
	cur := Sample{Latitude: -5.0, Longitude: 106.8, At: base.Add(9 * time.Minute)}

	res := Evaluate(prev, cur)

	assert.False(t, res.Suspicious)
	assert.Less(t, res.SpeedKmh, MaxPlausibleSpeedKmh)
}

func TestEvaluate_SamePlace(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	prev := Sample{Latitude: -6.2, Longitude: 106.8, At: base}
	cur := Sample{Latitude: -6.2, Longitude: 106.8, At: base.Add(8 * time.Hour)}

	res := Evaluate(prev, cur)

	assert.False(t, res.Suspicious)
	assert.Zero(t, res.DistanceKm)
}
