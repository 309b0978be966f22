// Package geo resuelve ubicaciones textuales a coordenadas y mide distancias.
package geo

import (
	"context"
	"errors"
	"math"
	"strings"

	"swapwise/internal/domain"
)

// ErrAddressNotFound indica que el servicio no pudo resolver la direccion.
var ErrAddressNotFound = errors.New("address not found")

// Geocoder convierte una direccion en coordenadas.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (domain.Coordinate, error)
}

const earthRadiusKm = 6371.0

// DistanceKm calcula la distancia de gran circulo (haversine) en kilometros.
func DistanceKm(a, b domain.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CacheKey arma la clave "district,province" normalizada a minusculas y sin espacios
// en los extremos, para que variantes de escritura compartan entrada.
func CacheKey(district, province string) string {
	return strings.ToLower(strings.TrimSpace(district)) + "," + strings.ToLower(strings.TrimSpace(province))
}
