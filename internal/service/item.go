package service

import (
	"context"
	"errors"
	"time"

	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"github.com/wishkeeper/wishkeeper-go/internal/repository"
)

var ErrItemNotFound = errors.New("item not found")

// ItemService manages the items document and keeps each wishlist's
// ItemCount equal to the number of items that reference it. Counts are
// rewritten in the same transaction as the item change.
type ItemService struct {
	data *repository.Collections
	now  func() time.Time
}

func NewItemService(data *repository.Collections) *ItemService {
	return &ItemService{data: data, now: time.Now}
}

func (s *ItemService) List(ctx context.Context) ([]model.WishlistItem, error) {
	return s.data.Items(ctx)
}

func (s *ItemService) Create(ctx context.Context, req model.CreateItemRequest) (model.WishlistItem, error) {
	if err := validateStruct(req); err != nil {
		return model.WishlistItem{}, err
	}

	id, err := newID()
	if err != nil {
		return model.WishlistItem{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	tags, ok := model.ParseTags(req.Tags)
	if !ok {
		tags = []string{}
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	item := model.WishlistItem{
		ID:            id,
		Title:         req.Title,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Site:          req.Site,
		WishlistID:    req.WishlistID,
		Priority:      priority,
		Notes:         req.Notes,
		Tags:          tags,
		InStock:       inStock,
		DateAdded:     s.now().UTC().Format(model.DateAddedLayout),
	}

	err = s.data.Mutate(ctx, func(snap *repository.Snapshot) error {
		snap.Items = append(snap.Items, item)
		recount(snap, item.WishlistID)
		return nil
	})
	if err != nil {
		return model.WishlistItem{}, err
	}
	return item, nil
}

// Update merges the non-nil fields of req into the stored item. Tags are
// replaced only when an array is sent. Moving an item to another wishlist
// recounts both wishlists.
func (s *ItemService) Update(ctx context.Context, req model.UpdateItemRequest) (model.WishlistItem, error) {
	if err := validateStruct(req); err != nil {
		return model.WishlistItem{}, err
	}

	var updated model.WishlistItem
	err := s.data.Mutate(ctx, func(snap *repository.Snapshot) error {
		i := indexOfItem(snap.Items, req.ID)
		if i < 0 {
			return ErrItemNotFound
		}
		item := &snap.Items[i]
		previousOwner := item.WishlistID

		applyItemUpdate(item, req)

		recount(snap, previousOwner, item.WishlistID)
		updated = *item
		return nil
	})
	if err != nil {
		return model.WishlistItem{}, err
	}
	return updated, nil
}

// Delete removes the item and recounts its wishlist. An unknown id is not an
// error.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	if err := requireField("id", id); err != nil {
		return err
	}

	return s.data.Mutate(ctx, func(snap *repository.Snapshot) error {
		i := indexOfItem(snap.Items, id)
		if i < 0 {
			return nil
		}
		owner := snap.Items[i].WishlistID
		snap.Items = append(snap.Items[:i], snap.Items[i+1:]...)
		recount(snap, owner)
		return nil
	})
}

func applyItemUpdate(item *model.WishlistItem, req model.UpdateItemRequest) {
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		item.OriginalPrice = *req.OriginalPrice
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Site != nil {
		item.Site = *req.Site
	}
	if req.WishlistID != nil && *req.WishlistID != "" {
		item.WishlistID = *req.WishlistID
	}
	if req.Priority != nil && *req.Priority != "" {
		item.Priority = *req.Priority
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if tags, ok := model.ParseTags(req.Tags); ok {
		item.Tags = tags
	}
	if req.InStock != nil {
		item.InStock = *req.InStock
	}
}

// recount sets ItemCount on each named wishlist that exists in snap.
func recount(snap *repository.Snapshot, wishlistIDs ...string) {
	for _, id := range wishlistIDs {
		i := indexOfWishlist(snap.Wishlists, id)
		if i < 0 {
			continue
		}
		n := 0
		for _, item := range snap.Items {
			if item.WishlistID == id {
				n++
			}
		}
		snap.Wishlists[i].ItemCount = n
	}
}

func indexOfItem(items []model.WishlistItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
