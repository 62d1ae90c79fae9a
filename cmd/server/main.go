package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vincentputra/pos-app-new/internal/cart"
	"github.com/vincentputra/pos-app-new/internal/checkout"
	"github.com/vincentputra/pos-app-new/internal/config"
	"github.com/vincentputra/pos-app-new/internal/events"
	"github.com/vincentputra/pos-app-new/internal/guard"
	"github.com/vincentputra/pos-app-new/internal/handlers"
	"github.com/vincentputra/pos-app-new/internal/history"
	"github.com/vincentputra/pos-app-new/internal/journal"
	"github.com/vincentputra/pos-app-new/internal/kvstore"
	"github.com/vincentputra/pos-app-new/internal/logging"
	"github.com/vincentputra/pos-app-new/internal/posapi"
	"github.com/vincentputra/pos-app-new/internal/search"
	"github.com/vincentputra/pos-app-new/internal/session"
	httpserver "github.com/vincentputra/pos-app-new/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()

	var store kvstore.Store
	var redisStore *kvstore.RedisStore
	if configuration.REDIS_URL != "" {
		redisStore, err = kvstore.NewRedisStore(ctx, configuration.REDIS_URL)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		store = redisStore
	} else {
		logger.Warn("REDIS_URL not set, sessions will not survive a restart")
		store = kvstore.NewMemoryStore()
	}

	api := posapi.NewClient(configuration.API_BASE)
	carts := cart.NewRegistry()
	tracker := history.New(store)
	sessions := session.NewManager(store, api, carts, tracker, []byte(configuration.JWT_SECRET), logger)

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var productIndex *search.Index
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		productIndex = &search.Index{ES: esClient, Index: search.ProductIndex}
	}

	var txJournal *journal.Journal
	if configuration.DB_HOST != "" {
		txJournal, err = journal.Open(configuration.JournalDSN())
		if err != nil {
			log.Fatalf("journal init error: %v", err)
		}
	}

	checkoutService := &checkout.Service{
		API:           api,
		Carts:         carts,
		Sessions:      sessions,
		Journal:       txJournal,
		Producer:      producer,
		Log:           logger,
		TaxRate:       configuration.TAX_RATE,
		ReceiptPrefix: configuration.RECEIPT_PREFIX,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		Guard:              guard.New(sessions, tracker, logger),
		AuthHandler:        &handlers.AuthHandler{Sessions: sessions, Producer: producer},
		CartHandler:        &handlers.CartHandler{Carts: carts, Producer: producer},
		CheckoutHandler:    &handlers.CheckoutHandler{Service: checkoutService},
		CatalogHandler:     &handlers.CatalogHandler{API: api, Sessions: sessions, Products: productIndex},
		StaffHandler:       &handlers.StaffHandler{API: api, Sessions: sessions},
		ShiftHandler:       &handlers.ShiftHandler{API: api, Sessions: sessions, Journal: txJournal, Producer: producer},
		TransactionHandler: &handlers.TransactionHandler{API: api, Sessions: sessions, Journal: txJournal},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if txJournal != nil {
		if err := txJournal.Close(); err != nil {
			log.Printf("journal close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
