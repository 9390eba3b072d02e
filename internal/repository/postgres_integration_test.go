//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"location-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func TestRepository_LocationRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Bootstrap(ctx))
	// Bootstrap is idempotent
	require.NoError(t, repo.Bootstrap(ctx))

	t.Run("find returns nil for unknown region code", func(t *testing.T) {
		location, err := repo.FindLocationByRegionCode(ctx, "0000000000")
		require.NoError(t, err)
		assert.Nil(t, location)
	})

	t.Run("saving the same grid pair twice yields one group", func(t *testing.T) {
		first, err := repo.SaveLocationGroup(ctx, models.LocationGroup{
			GridX: "60", GridY: "127", CreatedAt: time.Now(),
		})
		require.NoError(t, err)

		second, err := repo.SaveLocationGroup(ctx, models.LocationGroup{
			GridX: "60", GridY: "127", CreatedAt: time.Now(),
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)

		found, err := repo.FindLocationGroupByGrid(ctx, "60", "127")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, first.ID, found.ID)
	})

	t.Run("blank grid pair is a valid group key", func(t *testing.T) {
		group, err := repo.SaveLocationGroup(ctx, models.LocationGroup{
			GridX: "", GridY: "", CreatedAt: time.Now(),
		})
		require.NoError(t, err)

		found, err := repo.FindLocationGroupByGrid(ctx, "", "")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, group.ID, found.ID)
	})

	t.Run("saving the same region code twice yields one location", func(t *testing.T) {
		group, err := repo.SaveLocationGroup(ctx, models.LocationGroup{
			GridX: "97", GridY: "74", CreatedAt: time.Now(),
		})
		require.NoError(t, err)

		first, err := repo.SaveLocation(ctx, models.Location{
			RegionCode: "2629010600",
			CityDo:     "부산",
			GuGun:      "남구",
			EupMyun:    "대연동",
			Lat:        "35.134", Lon: "129.091",
			GroupID:   group.ID,
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)

		second, err := repo.SaveLocation(ctx, models.Location{
			RegionCode: "2629010600",
			CityDo:     "다른값",
			GuGun:      "다른값",
			EupMyun:    "다른값",
			GroupID:    group.ID,
			CreatedAt:  time.Now(),
		})
		require.NoError(t, err)

		// The first write wins; the conflicting insert returns the stored row.
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "부산", second.CityDo)

		found, err := repo.FindLocationByRegionCode(ctx, "2629010600")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, first.ID, found.ID)
		assert.Equal(t, group.ID, found.GroupID)
	})
}
