package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"resume-jobmatch/internal/shared/metrics"
	"resume-jobmatch/internal/shared/telemetry"
)

// ErrNotConfigured is reported when Adzuna credentials are missing.
var ErrNotConfigured = errors.New("adzuna credentials not configured")

// Options configures an AdzunaClient.
type Options struct {
	AppID          string
	APIKey         string
	BaseURL        string
	Country        string
	ResultsPerPage int
	Timeout        time.Duration
}

// AdzunaClient searches the Adzuna jobs API.
type AdzunaClient struct {
	appID      string
	apiKey     string
	baseURL    string
	country    string
	perPage    int
	httpClient *http.Client
}

// NewAdzunaClient applies defaults for any unset option.
func NewAdzunaClient(opts Options) *AdzunaClient {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.adzuna.com/v1/api/jobs"
	}
	country := strings.ToLower(strings.TrimSpace(opts.Country))
	if country == "" {
		country = "in"
	}
	perPage := opts.ResultsPerPage
	if perPage <= 0 {
		perPage = 10
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AdzunaClient{
		appID:      strings.TrimSpace(opts.AppID),
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		country:    country,
		perPage:    perPage,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both credentials are present.
func (c *AdzunaClient) Configured() bool {
	return c.appID != "" && c.apiKey != ""
}

// FindJobs returns listings matching any of the first few skills. It never
// fails: every error yields an empty, non-nil slice.
func (c *AdzunaClient) FindJobs(ctx context.Context, skills []string, opts SearchOptions) []JobListing {
	listings, err := c.Search(ctx, skills, opts)
	if err != nil {
		metrics.IncJobSearchFailed()
		telemetry.Warn("jobs.search_failed", map[string]any{
			"error":  err,
			"skills": len(skills),
		})
		return []JobListing{}
	}
	return listings
}

// BuildQuery joins up to MaxQuerySkills trimmed, non-empty skills with spaces.
func BuildQuery(skills []string) string {
	terms := make([]string, 0, MaxQuerySkills)
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		terms = append(terms, s)
		if len(terms) == MaxQuerySkills {
			break
		}
	}
	return strings.Join(terms, " ")
}

type searchResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID      flexString `json:"id"`
	Title   string     `json:"title"`
	Company *struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location *struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Search performs one query and reports failures. Use FindJobs for the
// never-fail variant.
func (c *AdzunaClient) Search(ctx context.Context, skills []string, opts SearchOptions) ([]JobListing, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	query := BuildQuery(skills)
	if query == "" {
		return []JobListing{}, nil
	}

	country := c.country
	if cc := strings.ToLower(strings.TrimSpace(opts.Country)); cc != "" {
		country = cc
	}
	perPage := c.perPage
	if opts.Limit > 0 {
		perPage = opts.Limit
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.apiKey)
	params.Set("what_or", query)
	params.Set("results_per_page", strconv.Itoa(perPage))
	params.Set("content-type", "application/json")
	endpoint := fmt.Sprintf("%s/%s/search/1?%s", c.baseURL, url.PathEscape(country), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("adzuna request timeout: %w", err)
		}
		return nil, fmt.Errorf("adzuna request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read adzuna response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("adzuna http status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(body)), 200))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("adzuna response parse: %w", err)
	}

	listings := make([]JobListing, 0, len(parsed.Results))
	for _, job := range parsed.Results {
		if listing, ok := toListing(job); ok {
			listings = append(listings, listing)
		}
	}

	telemetry.Info("jobs.search", map[string]any{
		"country":     country,
		"query_terms": len(strings.Fields(query)),
		"results":     len(listings),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return listings, nil
}

// toListing drops results without an application URL.
func toListing(job adzunaJob) (JobListing, bool) {
	link := strings.TrimSpace(job.RedirectURL)
	if link == "" {
		return JobListing{}, false
	}
	listing := JobListing{
		ID:          string(job.ID),
		Title:       strings.TrimSpace(htmlToText(job.Title)),
		Company:     DefaultCompany,
		Location:    DefaultLocation,
		Description: DefaultDescription,
		ApplyLink:   link,
	}
	if job.Company != nil && strings.TrimSpace(job.Company.DisplayName) != "" {
		listing.Company = strings.TrimSpace(job.Company.DisplayName)
	}
	if job.Location != nil && strings.TrimSpace(job.Location.DisplayName) != "" {
		listing.Location = strings.TrimSpace(job.Location.DisplayName)
	}
	if desc := htmlToText(job.Description); desc != "" {
		listing.Description = desc
	}
	return listing, true
}

// htmlToText flattens markup and collapses whitespace. Plain text passes
// through with only whitespace cleanup.
func htmlToText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
