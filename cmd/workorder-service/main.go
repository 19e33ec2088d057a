package main

import (
	"fmt"
	"os"

	"workorder-service/internal/auth"
	"workorder-service/internal/config"
	"workorder-service/internal/db"
	httphandler "workorder-service/internal/http"
	"workorder-service/internal/http/middleware"
	"workorder-service/internal/logger"
	"workorder-service/internal/repository"
	"workorder-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	orderRepo := repository.NewOrderRepository(database)
	techRepo := repository.NewTechnicianRepository(database)
	clientRepo := repository.NewClientRepository(database)

	costService := service.NewCostService(cfg.Rates)
	orderService := service.NewOrderService(orderRepo, techRepo, clientRepo, costService)
	visitService := service.NewVisitService(orderRepo)
	techService := service.NewTechnicianService(techRepo)
	clientService := service.NewClientService(clientRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	authService := service.NewAuthService(techRepo, tokenIssuer)

	handler := httphandler.NewHandler(authService, orderService, visitService, techService, clientService, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting work order service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
