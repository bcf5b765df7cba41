// Package handler provides HTTP handlers for the rates feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tjkspices_backend/internal/api"
	"tjkspices_backend/internal/feature/rates/domain"
	"tjkspices_backend/internal/feature/rates/domain/entity"
)

// RatesUsecase defines the rate operations consumed by this handler.
type RatesUsecase interface {
	LatestINR(ctx context.Context) (*entity.Rates, error)
}

// RatesHandler handles HTTP requests for exchange rates.
type RatesHandler struct {
	uc RatesUsecase
}

// NewRatesHandler creates a new RatesHandler with the given usecase.
func NewRatesHandler(uc RatesUsecase) *RatesHandler {
	return &RatesHandler{uc: uc}
}

// Latest returns the current INR exchange rates.
//
// GET /api/exchange-rate
func (h *RatesHandler) Latest(c *gin.Context) {
	rates, err := h.uc.LatestINR(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRateProvider) {
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "rate provider error"})
			return
		}
		slog.Error("rate fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rates": gin.H{
			"USD": rates.USD,
			"EUR": rates.EUR,
			"AED": rates.AED,
		},
	})
}
