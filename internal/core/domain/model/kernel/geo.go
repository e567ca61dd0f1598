package kernel

import "math"

const earthRadiusKm = 6371.0

// GeoPoint is a WGS 84 coordinate pair supplied by the geocoding
// collaborator. Distance-rated carriers require one per endpoint.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// DistanceKm returns the great-circle distance to other in kilometers,
// computed with the haversine formula.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
