package geofraud

import (
	"math"
	"time"
)

const (
	earthRadiusKm = 6371.0

	// MaxPlausibleSpeedKmh is roughly commercial-aircraft cruise speed. A
	// workforce that walks or drives between sites cannot legitimately move
	// faster than this between two clock events.
	MaxPlausibleSpeedKmh = 800.0

	// minElapsedHours (~0.7s) guards the speed division against
	// near-simultaneous duplicates, e.g. a network retry of the same submit.
	minElapsedHours = 0.0002
)

// Sample is one geotagged clock event.
type Sample struct {
	Latitude  float64
	Longitude float64
	At        time.Time
}

// Result reports the implied travel between two samples.
type Result struct {
	DistanceKm   float64
	ElapsedHours float64
	SpeedKmh     float64
	Suspicious   bool
}

// Evaluate computes the implied travel speed from prev to cur and flags
// physically implausible movement. It is a heuristic: callers must record the
// event either way and only surface the flag, never drop the event.
func Evaluate(prev, cur Sample) Result {
	distance := haversineKm(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
	elapsed := cur.At.Sub(prev.At).Hours()

	res := Result{
		DistanceKm:   distance,
		ElapsedHours: elapsed,
	}

	if elapsed < minElapsedHours {
		return res
	}

	res.SpeedKmh = distance / elapsed
	res.Suspicious = res.SpeedKmh > MaxPlausibleSpeedKmh
	return res
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	latRad1 := lat1 * math.Pi / 180
	lonRad1 := lon1 * math.Pi / 180
	latRad2 := lat2 * math.Pi / 180
	lonRad2 := lon2 * math.Pi / 180

	diffLat := latRad2 - latRad1
	diffLon := lonRad2 - lonRad1

	a := math.Sin(diffLat/2)*math.Sin(diffLat/2) +
		math.Cos(latRad1)*math.Cos(latRad2)*
			math.Sin(diffLon/2)*math.Sin(diffLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
