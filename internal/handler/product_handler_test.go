package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func testProducts() []model.Product {
	return []model.Product{
		{ID: "P001", Name: "Smartphone", Price: 7999, Category: "Electronics", CountInStock: 12, CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: "P002", Name: "Cotton Shirt", Price: 599, Category: "Clothing", CountInStock: 40, CreatedAt: time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC)},
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		queryParams    string
		expectedQuery  catalog.Query
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "No filters",
			queryParams:    "",
			expectedQuery:  catalog.Query{},
			mockReturn:     testProducts(),
			expectedStatus: http.StatusOK,
		},
		{
			name:        "All filters",
			queryParams: "?q=+phone+&category=Electronics&ranges=range1,range2&ranges=range3&sort=priceLowToHigh",
			expectedQuery: catalog.Query{
				Category:    "Electronics",
				Search:      "phone",
				PriceRanges: []string{"range1", "range2", "range3"},
				Sort:        catalog.SortPriceLowToHigh,
			},
			mockReturn:     testProducts()[:1],
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown price range",
			queryParams:    "?ranges=range42",
			expectedQuery:  catalog.Query{PriceRanges: []string{"range42"}},
			mockError:      model.ErrInvalidPriceRange,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidPriceRange,
		},
		{
			name:           "Catalog unavailable",
			queryParams:    "",
			expectedQuery:  catalog.Query{},
			mockError:      errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.mockError != nil {
				mockService.On("List", mock.Anything, tt.expectedQuery).Return(nil, tt.mockError)
			} else {
				mockService.On("List", mock.Anything, tt.expectedQuery).Return(tt.mockReturn, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
			} else {
				var products []model.Product
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
				assert.Len(t, products, len(tt.mockReturn))
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	product := testProducts()[0]

	tests := []struct {
		name           string
		productID      string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Found",
			productID:      "P001",
			mockReturn:     &product,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			productID:      "P999",
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Empty ID",
			productID:      "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				if tt.mockError != nil {
					mockService.On("GetByID", mock.Anything, tt.productID).Return(nil, tt.mockError)
				} else {
					mockService.On("GetByID", mock.Anything, tt.productID).Return(tt.mockReturn, nil)
				}
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.productID, nil)
			req.SetPathValue("id", tt.productID)
			rec := httptest.NewRecorder()

			handler.GetByID(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var got map[string]interface{}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, "P001", got["_id"])
				assert.Equal(t, float64(12), got["countInStock"])
			}
			if !tt.expectService {
				mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProductHandler_Categories(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("Categories", mock.Anything).Return([]string{"All", "Clothing", "Electronics"}, nil)

	rec := httptest.NewRecorder()
	handler.Categories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var categories []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&categories))
	assert.Equal(t, []string{"All", "Clothing", "Electronics"}, categories)
}

func TestProductHandler_PriceRanges(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("PriceRanges").Return(catalog.PriceBuckets())

	rec := httptest.NewRecorder()
	handler.PriceRanges(rec, httptest.NewRequest(http.MethodGet, "/api/price-ranges", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var buckets []catalog.PriceBucket
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&buckets))
	require.Len(t, buckets, 8)
	assert.Equal(t, int64(5000), buckets[1].Min)
}

func TestProductHandler_Export(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("List", mock.Anything, catalog.Query{Category: "Clothing"}).Return(testProducts()[1:], nil)

	rec := httptest.NewRecorder()
	handler.Export(rec, httptest.NewRequest(http.MethodGet, "/api/products/export?category=Clothing", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "products.xlsx")

	file, err := xlsx.OpenBinary(rec.Body.Bytes())
	require.NoError(t, err)
	sheet, ok := file.Sheet["Products"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "P002", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Cotton Shirt", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "599", sheet.Rows[1].Cells[4].String())
}

func TestProductHandler_Export_Error(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("List", mock.Anything, catalog.Query{Sort: "bogus"}).Return(nil, model.ErrInvalidSort)

	rec := httptest.NewRecorder()
	handler.Export(rec, httptest.NewRequest(http.MethodGet, "/api/products/export?sort=bogus", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.ErrCodeInvalidSort, decodeError(t, rec).Code)
}
