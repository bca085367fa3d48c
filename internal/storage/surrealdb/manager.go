// Package surrealdb implements the persistent store on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"os"

	"github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db      *surrealdb.DB
	logger  *common.Logger
	rawPath string

	companyStore   *CompanyStore
	contentStore   *ContentStore
	esgStore       *ESGStore
	portfolioStore *PortfolioStore
	fileStore      *FileStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// Define tables to ensure they exist (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{
		"companies", "stock_prices", "news", "news_content", "reports",
		"portfolio", "esg_scores", "sector_benchmarks",
		"company_benchmark_comparisons", "files",
	}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	// Ensure the raw data path exists for collector flat files
	rawPath := config.Storage.RawPath
	if rawPath == "" {
		rawPath = "data/raw"
	}
	if err := os.MkdirAll(rawPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create raw data path: %w", err)
	}

	m := &Manager{
		db:      db,
		logger:  logger,
		rawPath: rawPath,
	}

	m.companyStore = NewCompanyStore(db, logger)
	m.contentStore = NewContentStore(db, logger)
	m.esgStore = NewESGStore(db, logger)
	m.portfolioStore = NewPortfolioStore(db, logger)
	m.fileStore = NewFileStore(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) CompanyStore() interfaces.CompanyStore {
	return m.companyStore
}

func (m *Manager) ContentStore() interfaces.ContentStore {
	return m.contentStore
}

func (m *Manager) ESGStore() interfaces.ESGStore {
	return m.esgStore
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolioStore
}

func (m *Manager) FileStore() interfaces.FileStore {
	return m.fileStore
}

func (m *Manager) RawPath() string {
	return m.rawPath
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
