// Package geo provides the proximity filtering shared by the organization
// directory, cache drops and mutual-aid listings. Filtering is a linear scan
// over candidates; fine at current volumes, a spatial index is the upgrade
// path if it stops being fine.
package geo

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"prism/infrastructure"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// latitude/longitude points, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ParseCoordinates parses and validates query-string coordinates.
func ParseCoordinates(latStr, lngStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: coordinates must be numeric", infrastructure.ErrInvalidInput)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: coordinates must be numeric", infrastructure.ErrInvalidInput)
	}
	if err := ValidateCoordinates(lat, lng); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", infrastructure.ErrInvalidInput)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", infrastructure.ErrInvalidInput)
	}
	return nil
}

// Located is implemented by anything that can be distance-filtered.
type Located interface {
	Coordinates() (lat, lng float64)
}

// FilterByRadius keeps the items within radiusMeters of the query point,
// sorted nearest first, and reports each item's computed distance.
func FilterByRadius[T Located](items []T, lat, lng, radiusMeters float64) ([]T, []float64) {
	type scored struct {
		item     T
		distance float64
	}

	var kept []scored
	for _, it := range items {
		ilat, ilng := it.Coordinates()
		d := Distance(lat, lng, ilat, ilng)
		if d <= radiusMeters {
			kept = append(kept, scored{item: it, distance: d})
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].distance < kept[j].distance })

	out := make([]T, len(kept))
	dists := make([]float64, len(kept))
	for i, s := range kept {
		out[i] = s.item
		dists[i] = s.distance
	}
	return out, dists
}
