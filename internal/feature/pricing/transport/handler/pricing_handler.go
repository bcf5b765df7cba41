// Package handler provides HTTP handlers for the pricing feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tjkspices_backend/internal/api"
	"tjkspices_backend/internal/feature/pricing/domain"
	"tjkspices_backend/internal/feature/pricing/domain/entity"
	"tjkspices_backend/internal/feature/pricing/transport/http/dto"
	"tjkspices_backend/internal/platform/authn"
)

const auditWarning = "price updated but audit logging failed"

// PricingUsecase defines the pricing operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PricingUsecase interface {
	UpdatePrice(ctx context.Context, actor, id string, newPrice float64) (warning bool, err error)
	BulkAdjust(ctx context.Context, actor string, productIDs []string, mode string, amount float64) (count int, warning bool, err error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListPriceChanges(ctx context.Context, limit int) ([]entity.PriceChangeView, error)
}

// PricingHandler handles HTTP requests for the price list and its ledger.
type PricingHandler struct {
	uc PricingUsecase
}

// NewPricingHandler creates a new PricingHandler with the given usecase.
func NewPricingHandler(uc PricingUsecase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// UpdatePrice sets one product's price. Admin only; the route group applies
// the auth middleware before this handler runs.
//
// POST /api/update-price
func (h *PricingHandler) UpdatePrice(c *gin.Context) {
	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid body"})
		return
	}

	actor := authn.EmailFromContext(c)
	warning, err := h.uc.UpdatePrice(c.Request.Context(), actor, req.ID, *req.PriceINR)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}

	res := api.MutationResponse{Success: true}
	if warning {
		res.Warning = auditWarning
	}
	c.JSON(http.StatusOK, res)
}

// BulkUpdatePrices adds or subtracts a fixed amount across products.
//
// POST /api/bulk-update-prices
func (h *PricingHandler) BulkUpdatePrices(c *gin.Context) {
	var req dto.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid body"})
		return
	}

	actor := authn.EmailFromContext(c)
	count, warning, err := h.uc.BulkAdjust(c.Request.Context(), actor, req.ProductIDs, req.Mode, *req.Amount)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}

	res := api.MutationResponse{Success: true, Count: count}
	if warning {
		res.Warning = auditWarning
	}
	c.JSON(http.StatusOK, res)
}

// ListProducts returns the public price list.
//
// GET /api/products
func (h *PricingHandler) ListProducts(c *gin.Context) {
	products, err := h.uc.ListProducts(c.Request.Context())
	if err != nil {
		slog.Error("product list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "product list failed"})
		return
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		out = append(out, dto.ProductResponse{
			ID:       p.ID,
			Name:     p.Name,
			SKU:      sku,
			PriceINR: p.PriceINR,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListPriceChanges returns recent audit ledger entries, newest first.
//
// GET /api/price-changes?limit=50
func (h *PricingHandler) ListPriceChanges(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	changes, err := h.uc.ListPriceChanges(c.Request.Context(), limit)
	if err != nil {
		slog.Error("price change list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "price change list failed"})
		return
	}

	out := make([]dto.PriceChangeResponse, 0, len(changes))
	for _, ch := range changes {
		out = append(out, dto.PriceChangeResponse{
			ID:          ch.ID,
			ProductID:   ch.ProductID,
			ProductName: ch.ProductName,
			OldPrice:    ch.OldPrice,
			NewPrice:    ch.NewPrice,
			ChangedBy:   ch.ChangedBy,
			ChangedAt:   ch.ChangedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// writeMutationError maps domain errors onto the HTTP taxonomy: validation
// failures are 400, missing entities 404, everything else 500.
func (h *PricingHandler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoProductIDs),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrNoProductsMatched):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("price mutation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "price mutation failed"})
	}
}
