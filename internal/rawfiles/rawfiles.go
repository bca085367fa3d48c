// Package rawfiles reads and writes the flat files collectors produce under
// the raw data path. Collectors write them; the integrator loads them into
// the store.
package rawfiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/bobmcallan/greeninvest/internal/models"
)

const priceDateLayout = "2006-01-02"

// Dir addresses one ticker's flat files inside a base directory.
type Dir struct {
	base string
}

func NewDir(base string) Dir {
	return Dir{base: base}
}

func (d Dir) Base() string {
	return d.base
}

func (d Dir) path(ticker, suffix string) string {
	return filepath.Join(d.base, strings.ToUpper(ticker)+suffix)
}

func (d Dir) CompanyInfoPath(ticker string) string { return d.path(ticker, "_company_info.json") }
func (d Dir) PricesPath(ticker string) string      { return d.path(ticker, "_stock_data.csv") }
func (d Dir) NewsPath(ticker string) string        { return d.path(ticker, "_news_data.csv") }
func (d Dir) NewsContentPath(ticker string) string { return d.path(ticker, "_news_content_sample.csv") }
func (d Dir) ReportTextPath(ticker string) string  { return d.path(ticker, "_all_reports.txt") }

func (d Dir) WriteCompanyProfile(ticker string, profile *models.CompanyProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal company profile: %w", err)
	}
	return writeFile(d.CompanyInfoPath(ticker), data)
}

func (d Dir) ReadCompanyProfile(ticker string) (*models.CompanyProfile, error) {
	data, err := os.ReadFile(d.CompanyInfoPath(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to read company profile: %w", err)
	}
	var profile models.CompanyProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse company profile: %w", err)
	}
	return &profile, nil
}

// WritePrices writes daily bars as CSV. Dates travel as yyyy-mm-dd strings.
func (d Dir) WritePrices(ticker string, prices []models.StockPrice) error {
	rows := make([]models.StockPrice, len(prices))
	for i, p := range prices {
		rows[i] = p
		rows[i].DateString = p.Date.Format(priceDateLayout)
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("failed to marshal prices: %w", err)
	}
	return writeFile(d.PricesPath(ticker), data)
}

func (d Dir) ReadPrices(ticker string) ([]models.StockPrice, error) {
	data, err := os.ReadFile(d.PricesPath(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to read prices: %w", err)
	}
	var rows []models.StockPrice
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse prices: %w", err)
	}
	for i := range rows {
		t, err := time.Parse(priceDateLayout, rows[i].DateString)
		if err != nil {
			return nil, fmt.Errorf("bad price date %q: %w", rows[i].DateString, err)
		}
		rows[i].Date = t
	}
	return rows, nil
}

func (d Dir) WriteNews(ticker string, items []models.NewsItem) error {
	data, err := gocsv.MarshalBytes(&items)
	if err != nil {
		return fmt.Errorf("failed to marshal news: %w", err)
	}
	return writeFile(d.NewsPath(ticker), data)
}

func (d Dir) ReadNews(ticker string) ([]models.NewsItem, error) {
	data, err := os.ReadFile(d.NewsPath(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to read news: %w", err)
	}
	var items []models.NewsItem
	if err := gocsv.UnmarshalBytes(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse news: %w", err)
	}
	return items, nil
}

func (d Dir) WriteNewsContent(ticker string, contents []models.NewsContent) error {
	data, err := gocsv.MarshalBytes(&contents)
	if err != nil {
		return fmt.Errorf("failed to marshal news content: %w", err)
	}
	return writeFile(d.NewsContentPath(ticker), data)
}

func (d Dir) ReadNewsContent(ticker string) ([]models.NewsContent, error) {
	data, err := os.ReadFile(d.NewsContentPath(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to read news content: %w", err)
	}
	var contents []models.NewsContent
	if err := gocsv.UnmarshalBytes(data, &contents); err != nil {
		return nil, fmt.Errorf("failed to parse news content: %w", err)
	}
	return contents, nil
}

func (d Dir) WriteReportText(ticker, text string) error {
	return writeFile(d.ReportTextPath(ticker), []byte(text))
}

func (d Dir) ReadReportText(ticker string) (string, error) {
	data, err := os.ReadFile(d.ReportTextPath(ticker))
	if err != nil {
		return "", fmt.Errorf("failed to read report text: %w", err)
	}
	return string(data), nil
}

// HasFile reports whether a specific raw file exists.
func HasFile(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create raw directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
