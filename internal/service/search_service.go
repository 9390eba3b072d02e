package service

import (
	"context"
	"errors"
	"strings"

	"location-api/internal/client"
	"location-api/internal/metrics"
	"location-api/internal/models"

	"github.com/rs/zerolog/log"
)

// SearchService validates a keyword, queries the address-search provider and
// collapses the raw rows into one summary per administrative region.
type SearchService struct {
	addr AddressSearcher
}

// AddressSearcher interface for dependency injection.
type AddressSearcher interface {
	Search(ctx context.Context, keyword string) ([]models.RawAddress, error)
}

// NewSearchService creates a new search service.
func NewSearchService(addr AddressSearcher) *SearchService {
	return &SearchService{addr: addr}
}

// SearchResult distinguishes "the provider had zero matches" from "the
// provider call failed" without making either a hard failure.
type SearchResult struct {
	Regions  []models.RegionSummary `json:"regions"`
	Degraded bool                   `json:"degraded"`
}

// Search runs the keyword pipeline. Only a ValidationError is returned as an
// error; an upstream failure is logged, counted and degraded to an empty
// result so that region search stays available.
func (s *SearchService) Search(ctx context.Context, keyword string) (SearchResult, error) {
	sanitized, err := ValidateKeyword(keyword)
	if err != nil {
		return SearchResult{}, err
	}

	rows, err := s.addr.Search(ctx, sanitized)
	if err != nil {
		log.Error().Err(err).Str("keyword", sanitized).Msg("address search failed")
		metrics.UpstreamFailure("address", upstreamKind(err))
		metrics.SearchResult("degraded")
		return SearchResult{Regions: []models.RegionSummary{}, Degraded: true}, nil
	}

	regions := aggregateRegions(rows)
	if len(regions) == 0 {
		metrics.SearchResult("empty")
	} else {
		metrics.SearchResult("matched")
	}
	return SearchResult{Regions: regions}, nil
}

func upstreamKind(err error) string {
	var upstream *client.UpstreamError
	if errors.As(err, &upstream) {
		return string(upstream.Kind)
	}
	return "unknown"
}

// aggregateRegions collapses raw rows into one summary per region code,
// preserving first-seen order. The first row for a code wins; later
// duplicates are discarded.
func aggregateRegions(rows []models.RawAddress) []models.RegionSummary {
	seen := make(map[string]struct{}, len(rows))
	regions := make([]models.RegionSummary, 0, len(rows))

	for _, row := range rows {
		if row.RegionCode == "" {
			continue
		}
		if _, ok := seen[row.RegionCode]; ok {
			continue
		}
		seen[row.RegionCode] = struct{}{}

		regions = append(regions, models.RegionSummary{
			RegionCode: row.RegionCode,
			CityDo:     normalizeProvince(row.CityDo),
			GuGun:      row.GuGun,
			EupMyun:    row.EupMyun,
		})
	}

	return regions
}

// provinceSuffixes are the administrative suffixes stripped from province
// names, wherever they occur.
var provinceSuffixes = []string{"특별자치도", "특별자치시", "특별시", "광역시"}

// normalizeProvince shortens a province name the way the weather APIs expect
// it. 전북특별자치도 keeps its pre-2024 name instead of being stripped.
func normalizeProvince(name string) string {
	if name == "전북특별자치도" {
		return "전라북도"
	}
	for _, suffix := range provinceSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}
	return name
}
