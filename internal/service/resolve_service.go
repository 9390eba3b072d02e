package service

import (
	"context"
	"strconv"
	"time"

	"location-api/internal/metrics"
	"location-api/internal/models"

	"github.com/rs/zerolog/log"
)

// ResolveService turns a region summary into a persisted Location, reusing
// the stored row when the region was resolved before and sharing one
// LocationGroup per projected grid cell.
type ResolveService struct {
	repo    ResolveRepository
	geo     Geocoder
	project Projector
}

// ResolveRepository interface for dependency injection. Find methods return
// (nil, nil) when no row exists; Save methods return the canonical row,
// which under a lost creation race is the concurrent winner's row.
type ResolveRepository interface {
	FindLocationByRegionCode(ctx context.Context, regionCode string) (*models.Location, error)
	FindLocationGroupByGrid(ctx context.Context, gridX, gridY string) (*models.LocationGroup, error)
	SaveLocationGroup(ctx context.Context, group models.LocationGroup) (*models.LocationGroup, error)
	SaveLocation(ctx context.Context, location models.Location) (*models.Location, error)
}

// Geocoder interface for dependency injection.
type Geocoder interface {
	Lookup(ctx context.Context, cityDo, guGun, dong string) (*models.GeocodeResult, error)
}

// Projector maps WGS84 decimal degrees onto the forecast grid.
type Projector func(lat, lon float64) (x, y int)

// NewResolveService creates a new resolve service.
func NewResolveService(repo ResolveRepository, geo Geocoder, project Projector) *ResolveService {
	return &ResolveService{repo: repo, geo: geo, project: project}
}

// Resolve returns the Location for a region summary, creating it on first
// sight. Geocoding or projection failure never fails the resolution: the
// Location is persisted with blank coordinate fields instead.
func (s *ResolveService) Resolve(ctx context.Context, region models.RegionSummary) (*models.Location, error) {
	existing, err := s.repo.FindLocationByRegionCode(ctx, region.RegionCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	lat, lon, gridX, gridY := s.locate(ctx, region)

	group, err := s.repo.FindLocationGroupByGrid(ctx, gridX, gridY)
	if err != nil {
		return nil, err
	}
	if group == nil {
		group, err = s.repo.SaveLocationGroup(ctx, models.LocationGroup{
			GridX:     gridX,
			GridY:     gridY,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return nil, err
		}
	}

	return s.repo.SaveLocation(ctx, models.Location{
		RegionCode: region.RegionCode,
		CityDo:     region.CityDo,
		GuGun:      region.GuGun,
		EupMyun:    region.EupMyun,
		Lat:        lat,
		Lon:        lon,
		GroupID:    group.ID,
		CreatedAt:  time.Now(),
	})
}

// locate geocodes the region and projects the result onto the grid. Every
// failure degrades to blank strings.
func (s *ResolveService) locate(ctx context.Context, region models.RegionSummary) (lat, lon, gridX, gridY string) {
	coords, err := s.geo.Lookup(ctx, region.CityDo, region.GuGun, region.EupMyun)
	if err != nil {
		log.Error().Err(err).Str("region_cd", region.RegionCode).Msg("geocoding failed, resolving without coordinates")
		metrics.UpstreamFailure("geocoding", "transport")
		return "", "", "", ""
	}
	if coords == nil || coords.Lat == "" || coords.Lon == "" {
		log.Warn().Str("region_cd", region.RegionCode).Msg("geocoding returned no coordinates")
		return "", "", "", ""
	}

	lat, lon = coords.Lat, coords.Lon

	latF, errLat := strconv.ParseFloat(lat, 64)
	lonF, errLon := strconv.ParseFloat(lon, 64)
	if errLat != nil || errLon != nil {
		log.Error().Str("lat", lat).Str("lon", lon).Msg("coordinate projection failed, keeping raw coordinates only")
		return lat, lon, "", ""
	}

	x, y := s.project(latF, lonF)
	return lat, lon, strconv.Itoa(x), strconv.Itoa(y)
}
