package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "freightledger/internal/adapters/web"
	"freightledger/internal/app"
	"freightledger/internal/core"
	"freightledger/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	userService := core.NewUserService(pool)
	bookingService := core.NewBookingService(pool)
	paymentService := core.NewPaymentService(pool)
	ledgerService := core.NewLedgerService(pool)
	partyLedgerService := core.NewPartyLedgerService(pool)
	truckLedgerService := core.NewTruckLedgerService(pool)
	reportingService := core.NewReportingService(pool)
	partyService := core.NewPartyService(pool)
	companyService := core.NewCompanyService(pool)

	svc := app.NewAppService(
		userService,
		bookingService,
		paymentService,
		ledgerService,
		partyLedgerService,
		truckLedgerService,
		reportingService,
		partyService,
		companyService,
	)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
