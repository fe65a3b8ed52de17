package handler

import (
	"net/http"
	"strings"

	"shopfront/internal/catalog"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products?q=&category=&ranges=&sort= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), parseQuery(r))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", model.ErrCodeMissingField, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/categories requests.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve categories", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// PriceRanges handles GET /api/price-ranges requests.
func (h *ProductHandler) PriceRanges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.PriceRanges())
}

var exportHeaders = []string{"ID", "Name", "Description", "Category", "Price", "Stock", "Image", "CreatedAt"}

// Export handles GET /api/products/export requests. It accepts the same
// filters as List and streams the result as a spreadsheet.
func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), parseQuery(r))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create sheet")
		writeError(w, http.StatusInternalServerError, "failed to create spreadsheet", model.ErrCodeInternalError, h.logger)
		return
	}

	header := sheet.AddRow()
	for _, name := range exportHeaders {
		header.AddCell().SetString(name)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetInt64(p.Price)
		row.AddCell().SetInt(p.CountInStock)
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)

	if err := file.Write(w); err != nil {
		// Headers are already sent.
		h.logger.Error().Err(err).Msg("failed to write spreadsheet")
		return
	}

	h.logger.Debug().Int("count", len(products)).Msg("exported products")
}

func parseQuery(r *http.Request) catalog.Query {
	values := r.URL.Query()

	var ranges []string
	for _, raw := range values["ranges"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ranges = append(ranges, id)
			}
		}
	}

	return catalog.Query{
		Category:    values.Get("category"),
		Search:      strings.TrimSpace(values.Get("q")),
		PriceRanges: ranges,
		Sort:        catalog.SortKey(values.Get("sort")),
	}
}
