package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"tjkspices_backend/internal/app/router"
	auctionadapters "tjkspices_backend/internal/feature/auction/adapters"
	"tjkspices_backend/internal/feature/auction/adapters/spicesboard"
	auctionhandler "tjkspices_backend/internal/feature/auction/transport/handler"
	auctionusecase "tjkspices_backend/internal/feature/auction/usecase"
	pricingadapters "tjkspices_backend/internal/feature/pricing/adapters"
	pricinghandler "tjkspices_backend/internal/feature/pricing/transport/handler"
	pricingusecase "tjkspices_backend/internal/feature/pricing/usecase"
	"tjkspices_backend/internal/feature/rates/adapters/erapi"
	rateshandler "tjkspices_backend/internal/feature/rates/transport/handler"
	ratesusecase "tjkspices_backend/internal/feature/rates/usecase"
	"tjkspices_backend/internal/platform/authn"
	"tjkspices_backend/internal/platform/cache"
	infradb "tjkspices_backend/internal/platform/db"
	infrahttp "tjkspices_backend/internal/platform/http"
	infraredis "tjkspices_backend/internal/platform/redis"
	"tjkspices_backend/internal/shared/pacer"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Auction feature
	sbCfg := spicesboard.LoadConfig()
	scraper := spicesboard.NewScraper(sbCfg, infrahttp.NewHTTPClient(sbCfg.Timeout))
	auctionRepo := auctionadapters.NewAuctionRepository(db)
	cachedAuctionRepo := cache.NewCachingAuctionRepository(rdb, time.Hour, auctionRepo, "auction")
	ingestUC := auctionusecase.NewIngestUsecase(scraper, cachedAuctionRepo, pacer.NewFixedDelay(1500*time.Millisecond))

	// Pricing feature
	productRepo := pricingadapters.NewProductRepository(db)
	changeRepo := pricingadapters.NewPriceChangeRepository(db)
	pricingUC := pricingusecase.NewPricingUsecase(productRepo, changeRepo)

	// Rates feature
	ratesClient := erapi.NewClient(erapi.LoadConfig())
	ratesUC := ratesusecase.NewRatesUsecase(ratesClient, rdb, time.Hour)

	// Handlers
	auctionH := auctionhandler.NewAuctionHandler(ingestUC)
	pricingH := pricinghandler.NewPricingHandler(pricingUC)
	ratesH := rateshandler.NewRatesHandler(ratesUC)

	// Auth policy
	authCfg := authn.LoadConfig()
	if authCfg.JWTSecret == "" {
		log.Println("[WARN] AUTH_JWT_SECRET is not set. Admin routes will reject all tokens.")
	}
	if len(authCfg.AdminEmails) == 0 {
		log.Println("[WARN] ADMIN_EMAILS is not set. Nobody can mutate prices.")
	}

	r := router.NewRouter(authCfg, auctionH, pricingH, ratesH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
