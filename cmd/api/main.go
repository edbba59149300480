package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fayclick/internal/config"
	"fayclick/internal/db"
	"fayclick/internal/featuregate"
	"fayclick/internal/gateway"
	"fayclick/internal/httpserver"
	"fayclick/internal/notify"
	clientrepo "fayclick/internal/repository/client"
	invoicerepo "fayclick/internal/repository/invoice"
	productrepo "fayclick/internal/repository/product"
	quoterepo "fayclick/internal/repository/quote"
	structurerepo "fayclick/internal/repository/structure"
	subscriptionrepo "fayclick/internal/repository/subscription"
	tokenrepo "fayclick/internal/repository/token"
	userrepo "fayclick/internal/repository/user"
	authsvc "fayclick/internal/service/auth"
	cartsvc "fayclick/internal/service/cart"
	checkoutsvc "fayclick/internal/service/checkout"
	clientsvc "fayclick/internal/service/client"
	productsvc "fayclick/internal/service/product"
	quotesvc "fayclick/internal/service/quote"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	structureRepo := structurerepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	clientRepo := clientrepo.NewPostgres(dbpool)
	quoteRepo := quoterepo.NewPostgres(dbpool)
	invoiceRepo := invoicerepo.NewPostgres(dbpool, logger)
	subscriptionRepo := subscriptionrepo.NewPostgres(dbpool)

	authService := authsvc.New(userRepo, tokenRepo)
	productService := productsvc.New(productRepo)
	clientService := clientsvc.New(clientRepo)
	quoteService := quotesvc.New(quoteRepo, invoiceRepo)
	gate := featuregate.New(subscriptionRepo, cfg.GateCacheTTL)
	cartStore := cartsvc.NewStore(cfg.CartTTL)
	defer cartStore.Close()

	payGateway := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey, logger)

	var publisher *notify.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = notify.Connect(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatalf("connect to broker: %v", err)
		}
		defer publisher.Close()
	}

	opts := checkoutsvc.Options{
		PollInterval:   cfg.PollInterval,
		OMTimeout:      cfg.OMTimeout,
		WaveTimeout:    cfg.WaveTimeout,
		DisplaySeconds: cfg.ReceiptDisplaySeconds,
	}
	var checkoutService *checkoutsvc.Service
	if publisher != nil {
		checkoutService = checkoutsvc.New(cartStore, payGateway, invoiceRepo, gate, publisher, structureRepo, logger, opts)
	} else {
		checkoutService = checkoutsvc.New(cartStore, payGateway, invoiceRepo, gate, nil, structureRepo, logger, opts)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Auth:        authService,
		Products:    productService,
		Clients:     clientService,
		Quotes:      quoteService,
		Invoices:    invoiceRepo,
		Checkout:    checkoutService,
		Gate:        gate,
		Carts:       cartStore,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	}

	// Stop pollers after the listener so no new payments start mid-drain.
	checkoutService.Shutdown()
	logger.Printf("server stopped")
}
