package main

import (
	"log"
	"math/big"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "github.com/luisvid/nft-lending-protocol/internal/adapter/http"
	mw "github.com/luisvid/nft-lending-protocol/internal/adapter/middleware"
	"github.com/luisvid/nft-lending-protocol/internal/adapter/repository/eventstore"
	"github.com/luisvid/nft-lending-protocol/internal/asset/memnft"
	"github.com/luisvid/nft-lending-protocol/internal/asset/memtoken"
	"github.com/luisvid/nft-lending-protocol/internal/asset/oracle"
	"github.com/luisvid/nft-lending-protocol/internal/config"
	"github.com/luisvid/nft-lending-protocol/internal/infrastructure/cache"
	"github.com/luisvid/nft-lending-protocol/internal/infrastructure/db"
	"github.com/luisvid/nft-lending-protocol/internal/ledger"
	ucloan "github.com/luisvid/nft-lending-protocol/internal/usecase/loan"
	"github.com/luisvid/nft-lending-protocol/pkg/id"
)

// defaultCollateralClass is the single registry wired in the reference
// deployment; more classes register the same way.
const defaultCollateralClass = "art"

func main() {
	cfg := config.Load()
	if cfg.CustodyAccount == "" {
		cfg.CustodyAccount = id.NewID32()
		log.Printf("generated custody account %s", cfg.CustodyAccount)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	events := eventstore.New(gdb)
	if err := events.Migrate(); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// Custody and valuation collaborators. In-memory reference adapters; a
	// real deployment swaps these for external ledgers behind the same
	// interfaces.
	token := memtoken.New()
	registry := memnft.New()
	priceFeed := oracle.NewFixed()
	if price, ok := new(big.Int).SetString(cfg.UnitPrice, 10); ok {
		priceFeed.SetPrice(defaultCollateralClass, price)
	}
	if seed, ok := new(big.Int).SetString(cfg.SeedBalance, 10); ok && seed.Sign() > 0 {
		token.Mint(cfg.CustodyAccount, seed)
	}

	eng, err := ledger.New(cfg.OwnerAccount, cfg.CustodyAccount, cfg.Ledger)
	if err != nil {
		log.Fatal(err)
	}
	eng.SetToken(token)
	eng.SetOracle(priceFeed)
	eng.SetEventStore(events)
	eng.RegisterCollateralClass(defaultCollateralClass, registry)
	registry.RegisterReceiver(cfg.CustodyAccount, eng)

	uc := ucloan.NewUsecase(eng, events)
	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)
	e.POST("/loans", lh.Originate)
	e.GET("/loans/:loan_id", lh.Get)
	e.GET("/loans/:loan_id/events", lh.Events)
	e.POST("/loans/:loan_id/repay", lh.Repay)
	e.POST("/loans/:loan_id/liquidate", lh.Liquidate)
	e.POST("/rate", lh.SetRate)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
