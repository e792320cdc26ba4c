package domain

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

const (
	earthRadiusKm = 6371.0

	// DefaultRadiusKm - радиус поиска по умолчанию
	DefaultRadiusKm = 5.0

	// средняя скорость пешехода, км/ч
	walkingSpeedKmh = 5.0

	// ~1.2 м точности, достаточно для кластеризации на карте
	listingGeohashPrecision = 9
)

// Point - географическая точка (SRID 4326), долгота и широта в градусах
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Validate проверяет диапазоны координат
func (p Point) Validate() error {
	verr := &ValidationError{}
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		verr.Add("location.lat", "latitude must be between -90 and 90")
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		verr.Add("location.lon", "longitude must be between -180 and 180")
	}
	return verr.OrNil()
}

// Geohash кодирует точку с точностью, которую хранят листинги
func (p Point) Geohash() string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lon, listingGeohashPrecision)
}

// DistanceKm - расстояние по большому кругу (haversine)
func (p Point) DistanceKm(other Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLon := (other.Lon - p.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// WalkingMinutes оценивает время пешком по прямой
func WalkingMinutes(distanceKm float64) int {
	if distanceKm <= 0 {
		return 0
	}
	return int(math.Ceil(distanceKm / walkingSpeedKmh * 60))
}

// ValidateRadius проверяет радиус поиска в километрах
func ValidateRadius(radiusKm float64) error {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm <= 0 {
		return NewValidationError("distance", "distance must be a positive number of kilometers")
	}
	return nil
}

// ValidGeohashPrefix проверяет, что строка состоит из символов base32 geohash
func ValidGeohashPrefix(prefix string) bool {
	if prefix == "" || len(prefix) > listingGeohashPrecision {
		return false
	}
	for _, r := range prefix {
		if !isGeohashRune(r) {
			return false
		}
	}
	return true
}

func isGeohashRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'b' && r <= 'z':
		return r != 'i' && r != 'l' && r != 'o'
	}
	return false
}
