// Package integrator loads collector flat files into the persistent store
// and owns portfolio edits.
package integrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
	"github.com/bobmcallan/greeninvest/internal/rawfiles"
)

// Service implements interfaces.IntegratorService.
type Service struct {
	storage interfaces.StorageManager
	raw     rawfiles.Dir
	logger  *common.Logger
}

// NewService creates a new integrator service.
func NewService(storage interfaces.StorageManager, raw rawfiles.Dir, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		raw:     raw,
		logger:  logger,
	}
}

// IntegrateCompanyData loads every raw file present for a ticker into its
// store table: profile upserts the company row, prices and news append,
// report text overwrites. Missing raw files are skipped; a ticker with no
// profile file at all is an error.
func (s *Service) IntegrateCompanyData(ctx context.Context, ticker string) error {
	ticker = strings.ToUpper(ticker)
	s.logger.Info().Str("ticker", ticker).Msg("Integrating company data")

	profile, err := s.raw.ReadCompanyProfile(ticker)
	if err != nil {
		return fmt.Errorf("no collected profile for %s: %w", ticker, err)
	}

	company := &models.Company{
		Ticker:    ticker,
		Name:      profile.ShortName,
		Sector:    profile.Sector,
		Industry:  profile.Industry,
		Country:   profile.Country,
		Website:   profile.Website,
		Employees: profile.Employees,
		MarketCap: profile.MarketCap,
		UpdatedAt: time.Now(),
	}
	if err := s.storage.CompanyStore().SaveCompany(ctx, company); err != nil {
		return fmt.Errorf("failed to save company %s: %w", ticker, err)
	}

	if err := s.integratePrices(ctx, ticker); err != nil {
		return err
	}
	if err := s.integrateNews(ctx, ticker); err != nil {
		return err
	}
	if err := s.integrateReportText(ctx, ticker); err != nil {
		return err
	}

	s.logger.Info().Str("ticker", ticker).Msg("Company data integrated")
	return nil
}

func (s *Service) integratePrices(ctx context.Context, ticker string) error {
	if !rawfiles.HasFile(s.raw.PricesPath(ticker)) {
		s.logger.Debug().Str("ticker", ticker).Msg("No raw prices file")
		return nil
	}
	prices, err := s.raw.ReadPrices(ticker)
	if err != nil {
		return fmt.Errorf("failed to load raw prices for %s: %w", ticker, err)
	}
	if err := s.storage.CompanyStore().AppendPrices(ctx, prices); err != nil {
		return fmt.Errorf("failed to append prices for %s: %w", ticker, err)
	}
	return nil
}

func (s *Service) integrateNews(ctx context.Context, ticker string) error {
	if rawfiles.HasFile(s.raw.NewsPath(ticker)) {
		items, err := s.raw.ReadNews(ticker)
		if err != nil {
			return fmt.Errorf("failed to load raw news for %s: %w", ticker, err)
		}
		if err := s.storage.ContentStore().AppendNews(ctx, items); err != nil {
			return fmt.Errorf("failed to append news for %s: %w", ticker, err)
		}
	}

	if rawfiles.HasFile(s.raw.NewsContentPath(ticker)) {
		contents, err := s.raw.ReadNewsContent(ticker)
		if err != nil {
			return fmt.Errorf("failed to load raw news content for %s: %w", ticker, err)
		}
		if err := s.storage.ContentStore().AppendNewsContent(ctx, contents); err != nil {
			return fmt.Errorf("failed to append news content for %s: %w", ticker, err)
		}
	}
	return nil
}

func (s *Service) integrateReportText(ctx context.Context, ticker string) error {
	if !rawfiles.HasFile(s.raw.ReportTextPath(ticker)) {
		s.logger.Debug().Str("ticker", ticker).Msg("No raw report text file")
		return nil
	}
	text, err := s.raw.ReadReportText(ticker)
	if err != nil {
		return fmt.Errorf("failed to load raw report text for %s: %w", ticker, err)
	}
	report := &models.ReportText{
		Ticker:    ticker,
		Text:      text,
		UpdatedAt: time.Now(),
	}
	if err := s.storage.ContentStore().SaveReportText(ctx, report); err != nil {
		return fmt.Errorf("failed to save report text for %s: %w", ticker, err)
	}
	return nil
}

// ReplacePortfolio validates and replaces the whole portfolio table.
func (s *Service) ReplacePortfolio(ctx context.Context, positions []models.PortfolioPosition) error {
	for i := range positions {
		positions[i].Ticker = strings.ToUpper(strings.TrimSpace(positions[i].Ticker))
		if positions[i].Ticker == "" {
			return fmt.Errorf("position %d has no ticker", i)
		}
		if positions[i].Shares <= 0 {
			return fmt.Errorf("position %s has non-positive shares", positions[i].Ticker)
		}
		if positions[i].PurchasePrice <= 0 {
			return fmt.Errorf("position %s has non-positive purchase price", positions[i].Ticker)
		}
	}
	return s.storage.PortfolioStore().ReplacePortfolio(ctx, positions)
}

// SetPosition merges one position into the current portfolio in memory, then
// replaces the whole table.
func (s *Service) SetPosition(ctx context.Context, pos models.PortfolioPosition) error {
	current, err := s.storage.PortfolioStore().GetPortfolio(ctx)
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}
	merged := models.MergePosition(current, pos)
	return s.ReplacePortfolio(ctx, merged)
}

// Compile-time check
var _ interfaces.IntegratorService = (*Service)(nil)
