package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shopfront/internal/catalog"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

// catalogHandler serves the product listing and product detail reads behind API Gateway.
type catalogHandler struct {
	products service.ProductService
	logger   zerolog.Logger
}

func newCatalogHandler(products service.ProductService, logger zerolog.Logger) *catalogHandler {
	return &catalogHandler{
		products: products,
		logger:   logger.With().Str("handler", "catalog-lambda").Logger(),
	}
}

// Handle answers GET /products and GET /products/{id}.
func (h *catalogHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.Debug().Str("path", req.Path).Msg("received request")

	if id := req.PathParameters["id"]; id != "" {
		product, err := h.products.GetByID(ctx, id)
		if err != nil {
			return h.errorResponse(err), nil
		}
		return h.respond(http.StatusOK, product), nil
	}

	products, err := h.products.List(ctx, queryFromRequest(req))
	if err != nil {
		return h.errorResponse(err), nil
	}

	return h.respond(http.StatusOK, products), nil
}

func queryFromRequest(req events.APIGatewayProxyRequest) catalog.Query {
	raw := req.MultiValueQueryStringParameters["ranges"]
	if len(raw) == 0 && req.QueryStringParameters["ranges"] != "" {
		raw = []string{req.QueryStringParameters["ranges"]}
	}

	var ranges []string
	for _, value := range raw {
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ranges = append(ranges, id)
			}
		}
	}

	return catalog.Query{
		Category:    req.QueryStringParameters["category"],
		Search:      strings.TrimSpace(req.QueryStringParameters["q"]),
		PriceRanges: ranges,
		Sort:        catalog.SortKey(req.QueryStringParameters["sort"]),
	}
}

func (h *catalogHandler) errorResponse(err error) events.APIGatewayProxyResponse {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == model.ErrCodeProductNotFound {
			status = http.StatusNotFound
		}
		return h.respond(status, model.ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
	}

	h.logger.Error().Err(err).Msg("failed to serve catalog request")
	return h.respond(http.StatusInternalServerError, model.ErrorResponse{
		Error: "Failed to retrieve products",
		Code:  model.ErrCodeInternalError,
	})
}

func (h *catalogHandler) respond(status int, body interface{}) events.APIGatewayProxyResponse {
	headers := map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	if status == http.StatusOK {
		headers["Cache-Control"] = "public, max-age=300, must-revalidate"
	}

	data, err := json.Marshal(body)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers,
			Body:       `{"error":"Failed to format response","code":"INTERNAL_ERROR"}`,
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(data),
	}
}
