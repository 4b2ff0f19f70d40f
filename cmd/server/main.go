package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/citelens/citations-bot/internal/citations"
	"github.com/citelens/citations-bot/internal/config"
	"github.com/citelens/citations-bot/internal/monitoring"
	"github.com/citelens/citations-bot/internal/notifications"
	"github.com/citelens/citations-bot/internal/scheduler"
	"github.com/citelens/citations-bot/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Citations Bot")

	// Blob archive is optional; without it results are only stored relationally
	var archive storage.ArchiveInterface
	if cfg.StorageAccount != "" {
		azureArchive, err := storage.NewAzureArchive(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize result archive: %v", err)
		}
		archive = azureArchive
	} else {
		logrus.Warn("No storage account configured, result archival disabled")
	}

	// Postgres store is optional; without it sentiment alert sweeps are disabled
	var store storage.CitationStore
	if cfg.DatabaseURL != "" {
		pgStore, err := storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("Failed to initialize citation store: %v", err)
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		logrus.Warn("No database URL configured, relational citation store disabled")
	}

	notificationService := notifications.NewService(cfg)

	monitoringService := monitoring.NewService(cfg, archive, store, notificationService)

	schedulerService := scheduler.NewService(cfg, monitoringService)

	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// HTTP server for health checks, metrics and on-demand extraction
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	router.HandleFunc("/metrics", metricsHandler(monitoringService)).Methods("GET")

	router.HandleFunc("/trigger", triggerHandler(monitoringService)).Methods("POST")

	router.HandleFunc("/extract", extractHandler(monitoringService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(monitoringService *monitoring.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := monitoringService.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(metrics))
	}
}

func triggerHandler(monitoringService *monitoring.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		go func() {
			if err := monitoringService.RunMonitoring(); err != nil {
				logrus.Errorf("Manual monitoring trigger failed: %v", err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Monitoring triggered successfully"}`))
	}
}

type extractRequest struct {
	ResponseText   string   `json:"response_text"`
	QueryText      string   `json:"query_text"`
	BrandNames     []string `json:"brand_names"`
	Platform       string   `json:"platform,omitempty"`
	IncludeContext *bool    `json:"include_context,omitempty"`
	ContextWindow  *int     `json:"context_window,omitempty"`
}

// extractHandler runs the extraction engine synchronously against a caller
// supplied response. Nothing is persisted.
func extractHandler(monitoringService *monitoring.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body extractRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}

		req := citations.NewRequest(body.ResponseText, body.QueryText, body.BrandNames)
		if body.Platform != "" {
			req.Platform = body.Platform
		}
		if body.IncludeContext != nil {
			req.IncludeContext = *body.IncludeContext
		}
		// An explicit window is passed through untouched so a bad value
		// surfaces as invalid input; only an absent field gets the default.
		if body.ContextWindow != nil {
			req.ContextWindow = *body.ContextWindow
		}

		result, err := monitoringService.Extract(req)
		if err != nil {
			var invalid *citations.InvalidInputError
			if errors.As(err, &invalid) {
				writeJSONError(w, http.StatusBadRequest, invalid.Error())
				return
			}
			logrus.Errorf("Extraction failed: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "extraction failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Errorf("Failed to encode extraction result: %v", err)
		}
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
