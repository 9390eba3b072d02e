// Package projection converts WGS84 geodetic coordinates to the planar
// forecast grid used to deduplicate location groups.
package projection

import "math"

// Lambert conformal conic parameters of the 5km forecast grid.
const (
	earthRadius = 6371.00877 // km
	gridSpacing = 5.0        // km
	stdLat1     = 30.0       // deg
	stdLat2     = 60.0       // deg
	originLon   = 126.0      // deg
	originLat   = 38.0       // deg
	originX     = 43.0       // grid cell of the projection origin
	originY     = 136.0
)

// ToGrid projects a WGS84 (lat, lon) in decimal degrees onto the forecast
// grid and returns the enclosing cell. The grid is coarse on purpose:
// neighboring regions frequently land in the same cell, which is exactly what
// makes it usable as a dedup key.
func ToGrid(lat, lon float64) (x, y int) {
	degrad := math.Pi / 180.0

	re := earthRadius / gridSpacing
	slat1 := stdLat1 * degrad
	slat2 := stdLat2 * degrad
	olon := originLon * degrad
	olat := originLat * degrad

	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	sf := math.Tan(math.Pi*0.25 + slat1*0.5)
	sf = math.Pow(sf, sn) * math.Cos(slat1) / sn
	ro := math.Tan(math.Pi*0.25 + olat*0.5)
	ro = re * sf / math.Pow(ro, sn)

	ra := math.Tan(math.Pi*0.25 + lat*degrad*0.5)
	ra = re * sf / math.Pow(ra, sn)
	theta := lon*degrad - olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= sn

	x = int(math.Floor(ra*math.Sin(theta) + originX + 0.5))
	y = int(math.Floor(ro - ra*math.Cos(theta) + originY + 0.5))
	return x, y
}
