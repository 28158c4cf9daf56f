package model

import "encoding/json"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DateAddedLayout is the day-granularity format of WishlistItem.DateAdded.
const DateAddedLayout = "2006-01-02"

// WishlistItem is a tracked product. WishlistID is not checked against the
// wishlists document, so an item may outlive its wishlist.
type WishlistItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Price         string   `json:"price,omitempty"`
	OriginalPrice string   `json:"originalPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Site          string   `json:"site,omitempty"`
	WishlistID    string   `json:"wishlistId"`
	Priority      Priority `json:"priority"`
	Notes         string   `json:"notes,omitempty"`
	Tags          []string `json:"tags"`
	InStock       bool     `json:"inStock"`
	DateAdded     string   `json:"dateAdded"`
}

// CreateItemRequest represents a POST /api/items body. Tags is kept raw because
// clients may send something other than an array, which is treated as empty.
type CreateItemRequest struct {
	Title         string          `json:"title" validate:"required"`
	Price         string          `json:"price"`
	OriginalPrice string          `json:"originalPrice"`
	Image         string          `json:"image"`
	Site          string          `json:"site"`
	WishlistID    string          `json:"wishlistId" validate:"required"`
	Priority      Priority        `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes         string          `json:"notes"`
	Tags          json.RawMessage `json:"tags"`
	InStock       *bool           `json:"inStock"`
}

// UpdateItemRequest represents a PUT /api/items body. Nil fields are left as
// stored. ID and DateAdded cannot be changed.
type UpdateItemRequest struct {
	ID            string          `json:"id" validate:"required"`
	Title         *string         `json:"title"`
	Price         *string         `json:"price"`
	OriginalPrice *string         `json:"originalPrice"`
	Image         *string         `json:"image"`
	Site          *string         `json:"site"`
	WishlistID    *string         `json:"wishlistId"`
	Priority      *Priority       `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes         *string         `json:"notes"`
	Tags          json.RawMessage `json:"tags"`
	InStock       *bool           `json:"inStock"`
}

// ParseTags returns raw as a string slice when it is a JSON array of strings.
func ParseTags(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, false
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, true
}
