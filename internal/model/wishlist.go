package model

// Wishlist is a named collection of items. ItemCount is derived from the items
// document and rewritten whenever an item is added, moved or removed.
type Wishlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	ItemCount   int    `json:"itemCount"`
}

// WishlistColors is the palette a new wishlist's color is drawn from.
var WishlistColors = []string{"emerald", "rose", "amber", "blue", "purple", "teal"}

// CreateWishlistRequest represents a POST /api/wishlists body.
type CreateWishlistRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateWishlistRequest represents a PUT /api/wishlists body.
// A nil Description leaves the stored one untouched; an empty string clears it.
type UpdateWishlistRequest struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
