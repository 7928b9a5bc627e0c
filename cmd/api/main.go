package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/wisespend/installment-service/internal/config"
	"github.com/wisespend/installment-service/internal/handler"
	"github.com/wisespend/installment-service/internal/integrations/centralbank"
	"github.com/wisespend/installment-service/internal/repository"
	"github.com/wisespend/installment-service/internal/scheduler"
	"github.com/wisespend/installment-service/internal/service"
	"github.com/wisespend/installment-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	rateClient := centralbank.NewClient(cfg, logger)
	svc := service.NewService(repo, rateClient, logger)
	h := handler.NewHandler(svc, logger)

	// Payment reminder job
	sender := email.NewSender(cfg, logger)
	sched := scheduler.New(repo, sender, logger, cfg.ReminderCron, cfg.ReminderDays)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	h.Register(r)
	r.HandleFunc("/key-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := rateClient.GetKeyRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get key rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"key_rate": rate})
	}).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Errorf("Server failed: %v", err)
		return
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	logger.Info("Server exited")
}
