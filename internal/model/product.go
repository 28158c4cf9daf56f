package model

// ScrapeRequest represents a POST /api/scrape body.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required"`
}

// ProductFields is a suggestion for the item form, built from an extraction
// provider's answer. It is never written to the store.
type ProductFields struct {
	Title         string          `json:"title"`
	Price         string          `json:"price"`
	OriginalPrice string          `json:"originalPrice"`
	Image         string          `json:"image"`
	Site          string          `json:"site"`
	Notes         string          `json:"notes"`
	Tags          []string        `json:"tags"`
	InStock       bool            `json:"inStock"`
	Metadata      ProductMetadata `json:"metadata"`
}

// ProductMetadata echoes the page-level metadata the provider reported.
type ProductMetadata struct {
	SourceURL   string `json:"sourceUrl"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	OGImage     string `json:"ogImage,omitempty"`
}

// ScrapeResponse wraps ProductFields for the API.
type ScrapeResponse struct {
	Success bool          `json:"success"`
	Data    ProductFields `json:"data"`
}
