package repository

import (
	"context"
	"errors"
	"fmt"

	"location-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the persistence interface for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Bootstrap creates the schema if it does not exist. The unique indexes are
// what make get-or-create safe under concurrent writers: a lost race turns
// into a conflict, and the insert falls back to reading the winner's row.
func (r *Repository) Bootstrap(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS location_groups (
		id BIGSERIAL PRIMARY KEY,
		grid_x VARCHAR(20) NOT NULL,
		grid_y VARCHAR(20) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (grid_x, grid_y)
	);
	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		region_cd VARCHAR(20) NOT NULL UNIQUE,
		city_do VARCHAR(255) NOT NULL,
		gu_gun VARCHAR(255) NOT NULL,
		eup_myun VARCHAR(255) NOT NULL,
		lat VARCHAR(40) NOT NULL DEFAULT '',
		lon VARCHAR(40) NOT NULL DEFAULT '',
		group_id BIGINT NOT NULL REFERENCES location_groups (id),
		created_at TIMESTAMPTZ NOT NULL
	);
	`
	_, err := r.db.Exec(ctx, query)
	return err
}

// FindLocationByRegionCode returns the location for a region code, or nil
// when none exists.
func (r *Repository) FindLocationByRegionCode(ctx context.Context, regionCode string) (*models.Location, error) {
	sql := `
		SELECT id, region_cd, city_do, gu_gun, eup_myun, lat, lon, group_id, created_at
		FROM locations
		WHERE region_cd = $1
	`

	var loc models.Location
	err := r.db.QueryRow(ctx, sql, regionCode).Scan(
		&loc.ID,
		&loc.RegionCode,
		&loc.CityDo,
		&loc.GuGun,
		&loc.EupMyun,
		&loc.Lat,
		&loc.Lon,
		&loc.GroupID,
		&loc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to find location: %w", err)
	}

	return &loc, nil
}

// FindLocationGroupByGrid returns the group for an exact grid pair, or nil
// when none exists. Blank strings are a valid pair: every location without
// coordinates shares one group.
func (r *Repository) FindLocationGroupByGrid(ctx context.Context, gridX, gridY string) (*models.LocationGroup, error) {
	sql := `
		SELECT id, grid_x, grid_y, created_at
		FROM location_groups
		WHERE grid_x = $1 AND grid_y = $2
	`

	var group models.LocationGroup
	err := r.db.QueryRow(ctx, sql, gridX, gridY).Scan(
		&group.ID,
		&group.GridX,
		&group.GridY,
		&group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to find location group: %w", err)
	}

	return &group, nil
}

// SaveLocationGroup inserts a group, or returns the existing row when a
// concurrent writer created the same grid pair first.
func (r *Repository) SaveLocationGroup(ctx context.Context, group models.LocationGroup) (*models.LocationGroup, error) {
	sql := `
		INSERT INTO location_groups (grid_x, grid_y, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (grid_x, grid_y) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, sql, group.GridX, group.GridY, group.CreatedAt).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the race; the winner's row is canonical.
			return r.FindLocationGroupByGrid(ctx, group.GridX, group.GridY)
		}
		return nil, fmt.Errorf("repository: failed to save location group: %w", err)
	}

	return &group, nil
}

// SaveLocation inserts a location, or returns the existing row when a
// concurrent writer resolved the same region code first.
func (r *Repository) SaveLocation(ctx context.Context, location models.Location) (*models.Location, error) {
	sql := `
		INSERT INTO locations (region_cd, city_do, gu_gun, eup_myun, lat, lon, group_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (region_cd) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, sql,
		location.RegionCode,
		location.CityDo,
		location.GuGun,
		location.EupMyun,
		location.Lat,
		location.Lon,
		location.GroupID,
		location.CreatedAt,
	).Scan(&location.ID, &location.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.FindLocationByRegionCode(ctx, location.RegionCode)
		}
		return nil, fmt.Errorf("repository: failed to save location: %w", err)
	}

	return &location, nil
}
