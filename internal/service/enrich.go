package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/wishkeeper/wishkeeper-go/internal/extract"
	"github.com/wishkeeper/wishkeeper-go/internal/metrics"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"go.uber.org/zap"
)

var (
	ErrInvalidURL             = errors.New("url must be an absolute http or https address")
	ErrExtractorNotConfigured = errors.New("extraction provider is not configured")
	ErrExtractionFailed       = errors.New("failed to extract product data")
)

// Extractor returns product data found at a page URL.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (extract.Result, error)
}

// EnrichService turns a product page into suggested item fields. Nothing is
// persisted.
type EnrichService struct {
	extractor Extractor
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewEnrichService accepts a nil extractor; Enrich then reports
// ErrExtractorNotConfigured.
func NewEnrichService(extractor Extractor, m *metrics.Collector, logger *zap.Logger) *EnrichService {
	return &EnrichService{extractor: extractor, metrics: m, logger: logger}
}

func (s *EnrichService) Enrich(ctx context.Context, req model.ScrapeRequest) (model.ProductFields, error) {
	if err := validateStruct(req); err != nil {
		return model.ProductFields{}, err
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return model.ProductFields{}, &ValidationError{Field: "url", Message: ErrInvalidURL.Error()}
	}
	if s.extractor == nil {
		return model.ProductFields{}, ErrExtractorNotConfigured
	}

	res, err := s.extractor.Extract(ctx, req.URL)
	if err != nil {
		s.metrics.IncExtraction("failure")
		s.logger.Error("product extraction failed", zap.String("url", req.URL), zap.Error(err))
		return model.ProductFields{}, ErrExtractionFailed
	}
	s.metrics.IncExtraction("success")

	return normalizeProduct(req.URL, u.Hostname(), res), nil
}

func normalizeProduct(sourceURL, host string, res extract.Result) model.ProductFields {
	p, meta := res.Product, res.Metadata

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return model.ProductFields{
		Title:         firstNonEmpty(p.Title, meta.Title),
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         firstNonEmpty(p.Image, meta.OGImage),
		Site:          strings.TrimPrefix(host, "www."),
		Notes:         firstNonEmpty(p.Description, meta.Description),
		Tags:          tags,
		InStock:       p.Availability == nil || *p.Availability,
		Metadata: model.ProductMetadata{
			SourceURL:   sourceURL,
			Title:       meta.Title,
			Description: meta.Description,
			OGImage:     meta.OGImage,
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
