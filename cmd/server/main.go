package main

import (
	"log"
	"net/http"

	"orderdesk-be/internal/config"
	"orderdesk-be/internal/customer"
	"orderdesk-be/internal/db"
	"orderdesk-be/internal/handler"
	"orderdesk-be/internal/logger"
	"orderdesk-be/internal/middleware"
	"orderdesk-be/internal/order"
	"orderdesk-be/internal/product"
	"orderdesk-be/internal/user"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer database.Close()

	tokens, err := user.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatalf("failed to init token manager: %v", err)
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	customerRepo := customer.NewRepository(database)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, customerRepo, cfg.OrderLocation)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens)

	authHandler := handler.NewAuthHandler(userSvc)
	productHandler := handler.NewProductHandler(productSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)

	anyRole := middleware.RequireRole(user.RoleAdmin, user.RoleCustomer)
	adminOnly := middleware.RequireRole(user.RoleAdmin)
	customerOnly := middleware.RequireRole(user.RoleCustomer)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.Handle("POST /api/products", adminOnly(http.HandlerFunc(productHandler.Create)))
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.Handle("PUT /api/products/{id}", adminOnly(http.HandlerFunc(productHandler.Update)))
	mux.Handle("PATCH /api/products/{id}/disable", adminOnly(http.HandlerFunc(productHandler.Disable)))

	mux.Handle("POST /api/orders", customerOnly(http.HandlerFunc(orderHandler.Place)))
	mux.Handle("GET /api/orders", anyRole(http.HandlerFunc(orderHandler.List)))
	mux.Handle("GET /api/orders/{id}", anyRole(http.HandlerFunc(orderHandler.GetByID)))
	mux.Handle("PUT /api/orders/{id}/status", adminOnly(http.HandlerFunc(orderHandler.UpdateStatus)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Auth runs first so logging and rate limiting can key on the user.
	srv := middleware.Auth(tokens)(middleware.RateLimit(middleware.Logging(mux)))

	log.Printf("server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, srv))
}
