package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/storefront"
)

func listingFixture(slotID int, name, lang string) storefront.Listing {
	now := time.Now()
	return storefront.Listing{
		SlotID:        slotID,
		Name:          name,
		Price:         "175 000 XAF",
		PriceMinor:    175000,
		Currency:      "XAF",
		SellerContact: "+237650000001",
		StartTime:     now,
		EndTime:       now.AddDate(0, 0, 7),
		Language:      lang,
	}
}

func TestHandleListListings(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		wantLang       string
		setupMocks     func(*MockStorefrontService, string)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "Query Param Wins",
			target:   "/storefront/listings?lang=fr",
			wantLang: "fr",
			setupMocks: func(svc *MockStorefrontService, lang string) {
				svc.On("ListListings", mock.Anything, lang).
					Return([]storefront.Listing{listingFixture(1, "Bracelet en bronze", "fr")}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Bracelet en bronze",
		},
		{
			name:           "Accept Language Header",
			target:         "/storefront/listings",
			acceptLanguage: "fr-CM,fr;q=0.9,en;q=0.5",
			wantLang:       "fr-CM,fr;q=0.9,en;q=0.5",
			setupMocks: func(svc *MockStorefrontService, lang string) {
				svc.On("ListListings", mock.Anything, lang).
					Return([]storefront.Listing{listingFixture(1, "Bracelet en bronze", "fr")}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":1`,
		},
		{
			name:     "No Language Requested",
			target:   "/storefront/listings",
			wantLang: "",
			setupMocks: func(svc *MockStorefrontService, lang string) {
				svc.On("ListListings", mock.Anything, lang).
					Return([]storefront.Listing{listingFixture(1, "Bronze bracelet", "en")}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Bronze bracelet",
		},
		{
			name:     "Empty Storefront",
			target:   "/storefront/listings",
			wantLang: "",
			setupMocks: func(svc *MockStorefrontService, lang string) {
				svc.On("ListListings", mock.Anything, lang).Return([]storefront.Listing{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":0`,
		},
		{
			name:     "Service Error",
			target:   "/storefront/listings",
			wantLang: "",
			setupMocks: func(svc *MockStorefrontService, lang string) {
				svc.On("ListListings", mock.Anything, lang).Return(nil, domain.ErrStorage)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStorefrontService)
			if tt.setupMocks != nil {
				tt.setupMocks(svc, tt.wantLang)
			}
			handler := NewStorefrontHandler(svc)

			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			rec := httptest.NewRecorder()

			handler.HandleListListings(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetSlotView(t *testing.T) {
	liveListing := listingFixture(4, "Carved stool", "en")

	tests := []struct {
		name           string
		slotID         string
		setupMocks     func(*MockStorefrontService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid Slot ID",
			slotID:         "stool",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidSlotID,
		},
		{
			name:   "Slot Not Found",
			slotID: "999",
			setupMocks: func(svc *MockStorefrontService) {
				svc.On("GetSlotView", mock.Anything, 999, "").Return(nil, domain.ErrSlotNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgSlotNotFoundError,
		},
		{
			name:   "Live Slot",
			slotID: "4",
			setupMocks: func(svc *MockStorefrontService) {
				svc.On("GetSlotView", mock.Anything, 4, "").Return(&storefront.SlotView{
					SlotID:     4,
					SlotStatus: domain.SlotStatusLive,
					Listing:    &liveListing,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Carved stool",
		},
		{
			name:   "Empty Slot Hides Draft",
			slotID: "2",
			setupMocks: func(svc *MockStorefrontService) {
				svc.On("GetSlotView", mock.Anything, 2, "").Return(&storefront.SlotView{
					SlotID:     2,
					SlotStatus: domain.SlotStatusEmpty,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"slot_status":"empty"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStorefrontService)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			handler := NewStorefrontHandler(svc)

			req := withSlotIDParam(httptest.NewRequest("GET", "/storefront/slots/"+tt.slotID, nil), tt.slotID)
			rec := httptest.NewRecorder()

			handler.HandleGetSlotView(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
