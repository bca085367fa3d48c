// Package app wires configuration, storage, clients, and services into the
// shared application core used by cmd/greeninvest-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/greeninvest/internal/clients/gdelt"
	"github.com/bobmcallan/greeninvest/internal/clients/gemini"
	"github.com/bobmcallan/greeninvest/internal/clients/yahoo"
	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/rawfiles"
	"github.com/bobmcallan/greeninvest/internal/services/analysis"
	"github.com/bobmcallan/greeninvest/internal/services/benchmark"
	"github.com/bobmcallan/greeninvest/internal/services/collector"
	"github.com/bobmcallan/greeninvest/internal/services/dashboard"
	"github.com/bobmcallan/greeninvest/internal/services/integrator"
	"github.com/bobmcallan/greeninvest/internal/services/scorer"
	"github.com/bobmcallan/greeninvest/internal/storage/surrealdb"
)

// App holds all initialized clients and services.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	YahooClient  interfaces.ProfileClient
	GDELTClient  interfaces.NewsClient
	GeminiClient interfaces.SentimentClient

	Collector  interfaces.CollectorService
	Integrator interfaces.IntegratorService
	Scorer     interfaces.ScorerService
	Benchmark  interfaces.BenchmarkService
	Analysis   interfaces.AnalysisService
	Dashboard  interfaces.DashboardService

	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services. configPath may be
// empty, in which case GREENINVEST_CONFIG and then the binary directory are
// consulted.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("GREENINVEST_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "greeninvest.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/greeninvest.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative paths to the binary directory
	if config.Storage.RawPath != "" && !filepath.IsAbs(config.Storage.RawPath) {
		config.Storage.RawPath = filepath.Join(binDir, config.Storage.RawPath)
	}
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	yahooClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	gdeltClient := gdelt.NewClient(
		gdelt.WithBaseURL(config.Clients.GDELT.BaseURL),
		gdelt.WithLogger(logger),
		gdelt.WithRateLimit(config.Clients.GDELT.RateLimit),
		gdelt.WithTimeout(config.Clients.GDELT.GetTimeout()),
		gdelt.WithDaysBack(config.Clients.GDELT.DaysBack),
		gdelt.WithMaxRecords(config.Clients.GDELT.MaxRecords),
	)

	var geminiClient interfaces.SentimentClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - sentiment scores default to neutral")
	}

	raw := rawfiles.NewDir(storageManager.RawPath())

	collectorService := collector.NewService(yahooClient, gdeltClient, raw, config.Clients.GDELT.SampleSize, logger)
	integratorService := integrator.NewService(storageManager, raw, logger)
	scorerService := scorer.NewService(storageManager, geminiClient, logger)
	benchmarkService := benchmark.NewService(storageManager, logger)
	analysisService := analysis.NewService(storageManager, scorerService, benchmarkService, logger)
	dashboardService := dashboard.NewService(storageManager, logger)

	a := &App{
		Config:       config,
		Logger:       logger,
		Storage:      storageManager,
		YahooClient:  yahooClient,
		GDELTClient:  gdeltClient,
		GeminiClient: geminiClient,
		Collector:    collectorService,
		Integrator:   integratorService,
		Scorer:       scorerService,
		Benchmark:    benchmarkService,
		Analysis:     analysisService,
		Dashboard:    dashboardService,
		StartupTime:  startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
