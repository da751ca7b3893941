// Command gateway runs the LLM gateway: an HTTP server that classifies,
// routes, and audits chat completions across a fast and a complex back-end.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/opsmith/llm-gateway/pkg/api"
	"github.com/opsmith/llm-gateway/pkg/complexity"
	"github.com/opsmith/llm-gateway/pkg/config"
	"github.com/opsmith/llm-gateway/pkg/escalation"
	"github.com/opsmith/llm-gateway/pkg/llmclient"
	"github.com/opsmith/llm-gateway/pkg/metrics"
	"github.com/opsmith/llm-gateway/pkg/metricsstore"
	"github.com/opsmith/llm-gateway/pkg/quality"
	"github.com/opsmith/llm-gateway/pkg/routing"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("warning: could not load %s: %v", envPath, err)
		log.Printf("continuing with existing environment variables...")
	} else {
		log.Printf("loaded environment from %s", envPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("failed to initialize configuration: %v", err)
	}

	store, err := metricsstore.NewStore(ctx, metricsstore.Config{
		DSN:             settings.Database.URL,
		MaxConns:        int32(settings.Database.PoolSize + settings.Database.MaxOverflow),
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 15 * time.Minute,
	})
	if err != nil {
		log.Fatalf("failed to connect to metrics store: %v", err)
	}
	defer store.Close()
	log.Println("connected to metrics store")

	backend, err := llmclient.NewClient(settings.Backend.Address, settings.LLMTimeout)
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			slog.Error("failed to close backend connection", "error", cerr)
		}
	}()

	weights := complexity.CategoryWeights{
		Keyword:   settings.AnalyzerWeights.Keyword,
		Code:      settings.AnalyzerWeights.Code,
		Math:      settings.AnalyzerWeights.Math,
		Multipart: settings.AnalyzerWeights.Multipart,
		Length:    settings.AnalyzerWeights.Length,
	}
	analyzer := complexity.NewAnalyzer(weights)

	engine := routing.NewEngine(analyzer, settings.FastModel, settings.ComplexModel, nil,
		settings.ComplexityThresholdLow, settings.ComplexityThresholdHigh)

	checker := quality.NewChecker(50, settings.QualityThreshold)
	controller := escalation.NewController(backend, checker, settings.ComplexModel, settings.MaxEscalationDepth, nil)

	costRates := metrics.CostRates{
		FlashInputPer1M:    settings.Cost.FlashInput,
		FlashOutputPer1M:   settings.Cost.FlashOutput,
		ComplexInputPer1M:  settings.Cost.ComplexInput,
		ComplexOutputPer1M: settings.Cost.ComplexOutput,
	}

	server := api.NewServer(engine, controller, store, settings.ComplexModel, costRates)
	server.SetBackendHealthCheck(backend.Ping)

	addr := ":" + getEnv("HTTP_PORT", "8080")
	if settings.Server.Port != 0 {
		addr = ":" + strconv.Itoa(settings.Server.Port)
	}

	log.Printf("starting %s", settings.AppName)
	log.Printf("HTTP server listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
	}
}

