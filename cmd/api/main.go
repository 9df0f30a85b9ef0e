package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/okvann/billdesk/internal/billing"
	billStore "github.com/okvann/billdesk/internal/billing/store"
	"github.com/okvann/billdesk/internal/catalog"
	productStore "github.com/okvann/billdesk/internal/catalog/store"
	"github.com/okvann/billdesk/internal/config"
	"github.com/okvann/billdesk/internal/database"
	billdeskHttp "github.com/okvann/billdesk/internal/http"
	billsHandler "github.com/okvann/billdesk/internal/http/bills"
	productsHandler "github.com/okvann/billdesk/internal/http/products"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		catalogService = catalog.NewService(productStore.New(db))
		billingService = billing.NewService(billStore.New(db))
	)

	var (
		productsH = productsHandler.NewHandler(catalogService)
		billsH    = billsHandler.NewHandler(billingService, catalogService)
	)

	router := billdeskHttp.New(cfg.Server.JWTSecret, productsH, billsH)

	port := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
