package engine

import (
	"math"

	"github.com/shenikar/blood_mobilization_system/internal/models"
)

// EarthRadiusKm - радиус Земли для формулы гаверсинуса
const EarthRadiusKm = 6371.0

// Distance возвращает расстояние по большому кругу между двумя точками в км,
// округлённое до одного знака после запятой
func Distance(a, b models.Location) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(EarthRadiusKm*c*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
