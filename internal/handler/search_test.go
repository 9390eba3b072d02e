package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"location-api/internal/models"
	"location-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSearchService is a mock implementation of the SearchService interface
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, keyword string) (service.SearchResult, error) {
	args := m.Called(ctx, keyword)
	return args.Get(0).(service.SearchResult), args.Error(1)
}

func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		keyword        string
		mockResult     service.SearchResult
		mockError      error
		expectedStatus int
	}{
		{
			name:           "validation error returns 400",
			keyword:        "DROP",
			mockError:      &service.ValidationError{Reason: service.ReasonForbiddenKeyword},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "successful search with results",
			keyword: "서울 종로구",
			mockResult: service.SearchResult{
				Regions: []models.RegionSummary{
					{RegionCode: "1111051500", CityDo: "서울", GuGun: "종로구", EupMyun: "청운동"},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "degraded search still returns 200",
			keyword:        "서울",
			mockResult:     service.SearchResult{Regions: []models.RegionSummary{}, Degraded: true},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSearchService)
			handler := NewSearchHandler(mockSvc)

			mockSvc.On("Search", mock.Anything, tt.keyword).Return(tt.mockResult, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/locations/search", nil)
			q := req.URL.Query()
			q.Add("keyword", tt.keyword)
			req.URL.RawQuery = q.Encode()
			w := httptest.NewRecorder()

			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.Search(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var result service.SearchResult
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
				assert.Equal(t, tt.mockResult, result)
			} else {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
			}

			mockSvc.AssertExpectations(t)
		})
	}
}
