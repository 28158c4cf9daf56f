package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"github.com/wishkeeper/wishkeeper-go/internal/repository"
)

var ErrWishlistNotFound = errors.New("wishlist not found")

// WishlistService manages the wishlists document. Deleting a wishlist also
// removes its items.
type WishlistService struct {
	data      *repository.Collections
	pickColor func() string
}

func NewWishlistService(data *repository.Collections) *WishlistService {
	return &WishlistService{
		data: data,
		pickColor: func() string {
			return model.WishlistColors[rand.Intn(len(model.WishlistColors))]
		},
	}
}

func (s *WishlistService) List(ctx context.Context) ([]model.Wishlist, error) {
	return s.data.Wishlists(ctx)
}

func (s *WishlistService) Create(ctx context.Context, req model.CreateWishlistRequest) (model.Wishlist, error) {
	if err := validateStruct(req); err != nil {
		return model.Wishlist{}, err
	}

	id, err := newID()
	if err != nil {
		return model.Wishlist{}, err
	}
	wishlist := model.Wishlist{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Color:       s.pickColor(),
		ItemCount:   0,
	}

	err = s.data.Mutate(ctx, func(snap *repository.Snapshot) error {
		snap.Wishlists = append(snap.Wishlists, wishlist)
		return nil
	})
	if err != nil {
		return model.Wishlist{}, err
	}
	return wishlist, nil
}

// Update overwrites the name when it is non-empty and the description when
// it is present, even if empty.
func (s *WishlistService) Update(ctx context.Context, req model.UpdateWishlistRequest) (model.Wishlist, error) {
	if err := validateStruct(req); err != nil {
		return model.Wishlist{}, err
	}

	var updated model.Wishlist
	err := s.data.Mutate(ctx, func(snap *repository.Snapshot) error {
		i := indexOfWishlist(snap.Wishlists, req.ID)
		if i < 0 {
			return ErrWishlistNotFound
		}
		w := &snap.Wishlists[i]
		if req.Name != "" {
			w.Name = req.Name
		}
		if req.Description != nil {
			w.Description = *req.Description
		}
		updated = *w
		return nil
	})
	if err != nil {
		return model.Wishlist{}, err
	}
	return updated, nil
}

// Delete removes the wishlist and every item that references it in a single
// write. An unknown id is not an error.
func (s *WishlistService) Delete(ctx context.Context, id string) error {
	if err := requireField("id", id); err != nil {
		return err
	}

	return s.data.Mutate(ctx, func(snap *repository.Snapshot) error {
		if i := indexOfWishlist(snap.Wishlists, id); i >= 0 {
			snap.Wishlists = append(snap.Wishlists[:i], snap.Wishlists[i+1:]...)
		}

		kept := snap.Items[:0]
		for _, item := range snap.Items {
			if item.WishlistID != id {
				kept = append(kept, item)
			}
		}
		snap.Items = kept
		return nil
	})
}

func indexOfWishlist(wishlists []model.Wishlist, id string) int {
	for i := range wishlists {
		if wishlists[i].ID == id {
			return i
		}
	}
	return -1
}

// newID returns a time-ordered UUID.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
