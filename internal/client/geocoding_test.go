package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"location-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodingClient_Lookup(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-app-key", r.Header.Get("appKey"))

			q := r.URL.Query()
			assert.Equal(t, "1", q.Get("version"))
			assert.Equal(t, "서울", q.Get("city_do"))
			assert.Equal(t, "종로구", q.Get("gu_gun"))
			assert.Equal(t, "청운동", q.Get("dong"))
			assert.Equal(t, "F00", q.Get("addressFlag"))
			assert.Equal(t, "WGS84GEO", q.Get("coordType"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"coordinateInfo": {"lat": "37.587111", "lon": "126.969069"}}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(server.URL, "test-app-key")
		result, err := client.Lookup(context.Background(), "서울", "종로구", "청운동")

		require.NoError(t, err)
		assert.Equal(t, &models.GeocodeResult{Lat: "37.587111", Lon: "126.969069"}, result)
	})

	t.Run("missing coordinate payload is no result, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(server.URL, "test-app-key")
		result, err := client.Lookup(context.Background(), "서울", "종로구", "청운동")

		assert.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("non-200 status with error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"id": "1", "code": "2201", "message": "주소를 찾을 수 없습니다"}}`))
		}))
		defer server.Close()

		client := NewGeocodingClient(server.URL, "test-app-key")
		_, err := client.Lookup(context.Background(), "서울", "종로구", "청운동")

		var geocode *GeocodeError
		require.True(t, errors.As(err, &geocode))
		assert.Equal(t, http.StatusBadRequest, geocode.Status)
	})

	t.Run("connection failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewGeocodingClient(server.URL, "test-app-key")
		_, err := client.Lookup(context.Background(), "서울", "종로구", "청운동")

		var geocode *GeocodeError
		require.True(t, errors.As(err, &geocode))
	})
}
