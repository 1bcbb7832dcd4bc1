package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	disburseadp "peerlend-backend/internal/adapter/disbursement"
	httpadp "peerlend-backend/internal/adapter/http"
	mw "peerlend-backend/internal/adapter/middleware"
	notifyadp "peerlend-backend/internal/adapter/notification"
	"peerlend-backend/internal/adapter/repository/mysql"
	"peerlend-backend/internal/config"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/infrastructure/db"
	applicationuc "peerlend-backend/internal/usecase/application"
	"peerlend-backend/internal/usecase/negotiation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	appRepo := mysql.NewApplicationRepository(gdb)
	offerRepo := mysql.NewOfferRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	gateway := disburseadp.NewHTTPGateway(cfg.DisburseBaseURL, time.Duration(cfg.DisburseTimeoutSecs)*time.Second)
	relay := notifyadp.NewRedisRelay(rdb, cfg.NotifyChannel)

	appUC := applicationuc.NewUsecase(appRepo)
	negUC := negotiation.NewUsecase(appRepo, offerRepo, guow, gateway, relay)

	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(appUC)
	offerH := httpadp.NewOfferHandler(negUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.POST("/applications", appH.SubmitApplication)
	e.GET("/applications", appH.ListOpenApplications)
	e.GET("/applications/:application_id", appH.GetApplication)

	e.POST("/applications/:application_id/offers", offerH.CreateOffer)
	e.GET("/applications/:application_id/offers", offerH.ListOffers)
	e.POST("/offers/:offer_id/accept", offerH.AcceptOffer)
	e.POST("/offers/:offer_id/reject", offerH.RejectOffer)
	e.POST("/offers/:offer_id/disburse", offerH.DisburseOffer)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
