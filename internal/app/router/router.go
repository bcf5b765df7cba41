// Package router assembles the HTTP routing table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	auctionhandler "tjkspices_backend/internal/feature/auction/transport/handler"
	pricinghandler "tjkspices_backend/internal/feature/pricing/transport/handler"
	rateshandler "tjkspices_backend/internal/feature/rates/transport/handler"
	"tjkspices_backend/internal/platform/authn"
	infrahttp "tjkspices_backend/internal/platform/http"
	"tjkspices_backend/internal/platform/http/handler"
)

// NewRouter wires all routes. Reads are public; the price mutation routes sit
// behind token verification plus the admin policy.
func NewRouter(authCfg authn.Config, auction *auctionhandler.AuctionHandler,
	pricing *pricinghandler.PricingHandler, rates *rateshandler.RatesHandler) *gin.Engine {
	r := gin.Default()

	r.Use(infrahttp.RequestID())
	// The site frontend is served from a different origin
	r.Use(cors.Default())

	// Uptime probe
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	{
		// Public reads
		api.GET("/products", pricing.ListProducts)
		api.GET("/price-changes", pricing.ListPriceChanges)
		api.GET("/spicesboard-small", auction.ScrapeLatest)
		api.GET("/spicesboard-history", auction.History)
		api.GET("/exchange-rate", rates.Latest)

		// Admin-only mutations
		admin := api.Group("/")
		admin.Use(authn.AuthRequired(authCfg), authn.AdminOnly(authCfg))
		{
			admin.POST("/update-price", pricing.UpdatePrice)
			admin.POST("/bulk-update-prices", pricing.BulkUpdatePrices)
		}
	}

	return r
}
