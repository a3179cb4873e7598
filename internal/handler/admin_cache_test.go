package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndifor/vitrine/internal/storefront"
)

func TestHandleGetCacheStats(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockStorefrontService)
		expectedStatus int
		expectedStats  storefront.CacheStats
	}{
		{
			name: "Success",
			setupMock: func(m *MockStorefrontService) {
				stats := storefront.CacheStats{
					Hits:   100,
					Misses: 50,
					Size:   20,
				}
				m.On("CacheStats").Return(stats)
			},
			expectedStatus: http.StatusOK,
			expectedStats: storefront.CacheStats{
				Hits:   100,
				Misses: 50,
				Size:   20,
			},
		},
		{
			name: "Cold cache",
			setupMock: func(m *MockStorefrontService) {
				m.On("CacheStats").Return(storefront.CacheStats{})
			},
			expectedStatus: http.StatusOK,
			expectedStats:  storefront.CacheStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorefront := new(MockStorefrontService)
			tt.setupMock(mockStorefront)

			handler := NewAdminCacheHandler(mockStorefront)

			req := httptest.NewRequest("GET", "/api/v1/admin/cache/stats", nil)
			w := httptest.NewRecorder()

			handler.HandleGetCacheStats(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response storefront.CacheStats
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStats.Hits, response.Hits)
			assert.Equal(t, tt.expectedStats.Misses, response.Misses)
			assert.Equal(t, tt.expectedStats.Size, response.Size)

			mockStorefront.AssertExpectations(t)
		})
	}
}
