// Package extract fetches structured product data for a page URL from an
// external scraping provider.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.firecrawl.dev"
	requestTimeout = 60 * time.Second
	maxResponse    = 4 << 20
)

var (
	ErrProviderRejected = errors.New("provider reported an unsuccessful scrape")
	ErrCircuitOpen      = errors.New("extraction provider temporarily unavailable")
)

const productPrompt = "Extract product information including: title, current price, original price (if on sale), " +
	"main product image URL, brief description, brand name, stock availability, and relevant tags/categories. " +
	"Focus on e-commerce product details."

// productSchema is the JSON schema the provider fills in.
var productSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"title":         map[string]string{"type": "string", "description": "The product name or title"},
		"price":         map[string]string{"type": "string", "description": "Current price of the product"},
		"originalPrice": map[string]string{"type": "string", "description": "Original or retail price if different from current price"},
		"image":         map[string]string{"type": "string", "description": "Main product image URL"},
		"description":   map[string]string{"type": "string", "description": "Product description or summary"},
		"brand":         map[string]string{"type": "string", "description": "Brand or manufacturer name"},
		"availability":  map[string]string{"type": "boolean", "description": "Whether the product is in stock or available"},
		"tags": map[string]interface{}{
			"type":        "array",
			"items":       map[string]string{"type": "string"},
			"description": "Product categories, tags, or keywords",
		},
	},
	"required": []string{"title"},
}

// Product is the structured answer for one page. Every field is optional.
type Product struct {
	Title         string
	Price         string
	OriginalPrice string
	Image         string
	Description   string
	Brand         string
	Availability  *bool
	Tags          []string
}

// PageMetadata is what the provider read from the page head.
type PageMetadata struct {
	Title       string
	Description string
	OGImage     string
}

type Result struct {
	Product  Product
	Metadata PageMetadata
}

type scrapeRequest struct {
	URL         string      `json:"url"`
	Formats     []string    `json:"formats"`
	JSONOptions jsonOptions `json:"jsonOptions"`
}

type jsonOptions struct {
	Prompt string      `json:"prompt"`
	Schema interface{} `json:"schema"`
}

type scrapeResponse struct {
	Success bool       `json:"success"`
	Error   flexString `json:"error"`
	Data    struct {
		JSON     json.RawMessage `json:"json"`
		Metadata json.RawMessage `json:"metadata"`
	} `json:"data"`
}

// Config configures a Firecrawl client.
type Config struct {
	APIKey  string
	BaseURL string
	// RPS and Burst pace outgoing calls. RPS <= 0 disables pacing.
	RPS   float64
	Burst int
}

// Firecrawl calls the Firecrawl v1 scrape endpoint. Calls are paced by a
// token bucket and guarded by a circuit breaker.
type Firecrawl struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewFirecrawl(cfg Config, logger *zap.Logger) *Firecrawl {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	f := &Firecrawl{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		limiter: limiter,
		logger:  logger,
	}

	f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "firecrawl",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return f
}

// Extract scrapes pageURL and returns whatever product data the provider
// could find.
func (f *Firecrawl) Extract(ctx context.Context, pageURL string) (Result, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	out, err := f.breaker.Execute(func() (interface{}, error) {
		return f.scrape(ctx, pageURL)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Result{}, ErrCircuitOpen
	}
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}

func (f *Firecrawl) scrape(ctx context.Context, pageURL string) (Result, error) {
	body, err := json.Marshal(scrapeRequest{
		URL:     pageURL,
		Formats: []string{"json"},
		JSONOptions: jsonOptions{
			Prompt: productPrompt,
			Schema: productSchema,
		},
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("firecrawl request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return Result{}, fmt.Errorf("firecrawl response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("firecrawl returned status %d", resp.StatusCode)
	}

	var decoded scrapeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Result{}, fmt.Errorf("decode firecrawl response: %w", err)
	}
	if !decoded.Success {
		f.logger.Warn("firecrawl scrape unsuccessful", zap.String("url", pageURL), zap.String("error", string(decoded.Error)))
		return Result{}, ErrProviderRejected
	}

	var result Result
	if p, ok := decodeSection[productWire](decoded.Data.JSON); ok {
		result.Product = p.product()
	} else {
		f.logger.Warn("firecrawl product section unreadable", zap.String("url", pageURL))
	}
	if m, ok := decodeSection[metadataWire](decoded.Data.Metadata); ok {
		result.Metadata = m.metadata()
	} else {
		f.logger.Warn("firecrawl metadata section unreadable", zap.String("url", pageURL))
	}
	return result, nil
}
