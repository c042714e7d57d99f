package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/dealer-loans/internal/bootstrap"
	"github.com/segyhp/dealer-loans/internal/config"
	"github.com/segyhp/dealer-loans/internal/handler"
	"github.com/segyhp/dealer-loans/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The configured logger needs a valid configuration.
		response.Logger.WithError(err).Fatal("Failed to load configuration")
	}
	log := cfg.NewLogger()
	response.Logger = log

	// Initialize storage, cache and repositories
	app, err := bootstrap.Open(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	defer app.Close()

	handlers := handler.Handlers{
		Health:      handler.NewHealthHandler(app.Store, app.Redis, cfg.Health.Timeout),
		Loans:       handler.NewLoanHandler(app.LoanService()),
		Payments:    handler.NewPaymentHandler(app.PaymentService()),
		Dealerships: handler.NewDealershipHandler(app.DealershipService()),
		Borrowers:   handler.NewBorrowerHandler(app.BorrowerService()),
		Quote:       handler.NewQuoteHandler(cfg.GetDefaultCurrency()),
	}

	// Setup routes
	router := handler.NewRouter(handlers,
		response.RequestIDMiddleware,
		response.LoggingMiddleware(log),
		response.CORSMiddleware,
	)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
