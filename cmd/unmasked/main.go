package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/unmaskedindia/press/internal/app"
	"github.com/unmaskedindia/press/internal/metrics"
)

func main() {
	// Check if we should start HTTP server for monitoring
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	if err := app.Run(); err != nil {
		log.Fatalf("startup failed: %v", err)
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":       status,
		"last_run":     stats["last_run_time"],
		"last_error":   stats["last_error"],
		"pdfs_written": stats["pdfs_written"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
