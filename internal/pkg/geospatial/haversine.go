package geospatial

import (
	"math"
	"strconv"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in meters between two points.
// Out-of-range or NaN coordinates propagate NaN; callers must guard.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// Distance is Haversine over two GeoPoints.
func Distance(a, b domain.GeoPoint) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// BoundingBox returns a bounding box around a point with the given radius in meters.
func BoundingBox(lat, lon, radiusMeters float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusMeters / 111320.0
	lonDelta := radiusMeters / (111320.0 * math.Cos(toRad(lat)))

	return lat - latDelta, lon - lonDelta, lat + latDelta, lon + lonDelta
}

// modeSpeeds is the single source of truth for average speeds, in m/s.
var modeSpeeds = map[domain.TransportMode]float64{
	domain.ModeWalking:   1.4,
	domain.ModeBicycling: 4.2,
	domain.ModeDriving:   11.1,
}

// TravelTime estimates how long covering distanceMeters takes at the average
// speed of the given mode. Unknown modes fall back to walking.
func TravelTime(distanceMeters float64, mode domain.TransportMode) time.Duration {
	speed, ok := modeSpeeds[mode]
	if !ok {
		speed = modeSpeeds[domain.ModeWalking]
	}
	return time.Duration(distanceMeters / speed * float64(time.Second))
}

// FormatDistance renders a distance in meters the way the map UI expects:
// "850 m" under a kilometer, "1.2 km" at or above.
func FormatDistance(meters float64) string {
	if math.IsNaN(meters) || meters < 0 {
		return "Unknown distance"
	}
	if meters < 1000 {
		return strconv.Itoa(int(math.Round(meters))) + " m"
	}
	return strconv.FormatFloat(math.Round(meters/100)/10, 'f', 1, 64) + " km"
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
