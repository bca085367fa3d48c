package collector

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// maxReportsPerCompany bounds how many report PDFs are downloaded per run.
const maxReportsPerCompany = 3

// reportLinkHints mark anchor targets worth downloading. Matched against the
// lowercased href and link text.
var reportLinkHints = []string{"sustainability", "esg", "annual", "report", "responsibility"}

// ProcessReports discovers report PDFs on the company website, extracts
// their text, and writes the combined report text file. The company profile
// must already be collected; its website field drives discovery.
func (s *Service) ProcessReports(ctx context.Context, ticker string) (bool, error) {
	profile, err := s.raw.ReadCompanyProfile(ticker)
	if err != nil {
		return false, fmt.Errorf("company profile not collected for %s: %w", ticker, err)
	}
	if profile.Website == "" {
		s.logger.Info().Str("ticker", ticker).Msg("No website on profile, skipping reports")
		return false, nil
	}

	links, err := s.discoverReportLinks(ctx, profile.Website)
	if err != nil {
		return false, err
	}
	if len(links) == 0 {
		s.logger.Info().Str("ticker", ticker).Msg("No report links found")
		return false, nil
	}

	var texts []string
	for _, link := range links {
		text, err := s.downloadReportText(ctx, link)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", link).Msg("Failed to process report")
			continue
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return false, nil
	}

	if err := s.raw.WriteReportText(ticker, strings.Join(texts, "\n\n")); err != nil {
		return false, err
	}

	s.logger.Info().Str("ticker", ticker).Int("reports", len(texts)).Msg("Report text extracted")
	return true, nil
}

// discoverReportLinks scans the company website for PDF links that look like
// annual or sustainability reports.
func (s *Service) discoverReportLinks(ctx context.Context, site string) ([]string, error) {
	base, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("bad website URL %q: %w", site, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", site, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s returned status %d", site, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", site, err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if len(links) >= maxReportsPerCompany {
			return
		}
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return
		}
		if !matchesReportHint(strings.ToLower(href + " " + sel.Text())) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()
		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links, nil
}

func matchesReportHint(text string) bool {
	for _, hint := range reportLinkHints {
		if strings.Contains(text, hint) {
			return true
		}
	}
	return false
}

// downloadReportText fetches one PDF to a temp file and extracts its plain
// text.
func (s *Service) downloadReportText(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", link, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s returned status %d", link, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "greeninvest-report-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.ReadFrom(resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to save %s: %w", link, err)
	}
	tmp.Close()

	return extractPDFText(tmp.Name())
}

// extractPDFText pulls the plain text out of a PDF on disk.
func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}
