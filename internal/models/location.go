package models

import "time"

// RawAddress is a single row from the address-search provider, using the
// provider's field names. Rows are ephemeral; they only live long enough to
// be aggregated into RegionSummary values.
type RawAddress struct {
	RegionCode string `json:"admCd"`
	CityDo     string `json:"siNm"`
	GuGun      string `json:"sggNm"`
	EupMyun    string `json:"emdNm"`
}

// RegionSummary is one administrative region collapsed out of the raw search
// rows: the region code plus normalized province, district and neighborhood
// names. It is what search returns and what resolve consumes.
type RegionSummary struct {
	RegionCode string `json:"region_cd" binding:"required"`
	CityDo     string `json:"city_do"`
	GuGun      string `json:"gu_gun"`
	EupMyun    string `json:"eup_myun"`
}

// GeocodeResult carries latitude and longitude exactly as the geocoding
// provider returned them: decimal-degree strings, never reparsed into floats
// except at the projection boundary.
type GeocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// LocationGroup is one cell of the projected forecast grid. Every Location
// whose coordinates project onto the same (x, y) pair shares a single group.
// Write-once: never updated after creation.
type LocationGroup struct {
	ID        int64     `json:"id"`
	GridX     string    `json:"grid_x"`
	GridY     string    `json:"grid_y"`
	CreatedAt time.Time `json:"created_at"`
}

// Location is a resolved administrative region, unique per region code.
// Lat/Lon and the group's grid coordinates may all be blank when geocoding
// was unavailable at resolution time.
type Location struct {
	ID         int64     `json:"id"`
	RegionCode string    `json:"region_cd"`
	CityDo     string    `json:"city_do"`
	GuGun      string    `json:"gu_gun"`
	EupMyun    string    `json:"eup_myun"`
	Lat        string    `json:"lat"`
	Lon        string    `json:"lon"`
	GroupID    int64     `json:"group_id"`
	CreatedAt  time.Time `json:"created_at"`
}
