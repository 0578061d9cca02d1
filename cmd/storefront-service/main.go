package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evergreenmarket/storefront-service-go/internal/config"
	"github.com/evergreenmarket/storefront-service-go/internal/events"
	httpserver "github.com/evergreenmarket/storefront-service-go/internal/http"
	"github.com/evergreenmarket/storefront-service-go/internal/pricing"
	"github.com/evergreenmarket/storefront-service-go/internal/session"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront-service] ", log.LstdFlags|log.Lshortfile)

	rules := pricing.Rules{
		PromoRate:             decimal.NewFromFloat(cfg.PromoRate),
		TaxRate:               decimal.NewFromFloat(cfg.TaxRate),
		FreeShippingThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
		FlatShippingFee:       decimal.NewFromFloat(cfg.FlatShippingFee),
	}

	rabbitConn := events.MustDialRabbit()
	defer rabbitConn.Close()

	orderPublisher, err := events.NewRabbitOrderEventsPublisher(rabbitConn, events.NewMemorySequenceSource())
	if err != nil {
		logger.Fatalf("failed to create order publisher: %v", err)
	}

	sessions := session.NewStore()
	handler := httpserver.NewHandler(sessions, rules, orderPublisher)
	mux := httpserver.NewRouter(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront-service listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := orderPublisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}
