package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/wishkeeper/wishkeeper-go/internal/model"
)

const (
	WishlistsKey = "wishlists"
	ItemsKey     = "items"
)

// Snapshot is the full dataset as read inside one Mutate call.
type Snapshot struct {
	Wishlists []model.Wishlist
	Items     []model.WishlistItem
}

// Collections maps the two whole-array documents onto typed slices. Every
// read returns the entire collection and every write replaces it.
type Collections struct {
	store        DocumentStore
	wishlistsKey string
	itemsKey     string
}

// NewCollections prefixes both keys with namespace and a colon when namespace
// is not empty.
func NewCollections(store DocumentStore, namespace string) *Collections {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}
	return &Collections{
		store:        store,
		wishlistsKey: prefix + WishlistsKey,
		itemsKey:     prefix + ItemsKey,
	}
}

func (c *Collections) Wishlists(ctx context.Context) ([]model.Wishlist, error) {
	body, err := c.store.Get(ctx, c.wishlistsKey)
	if err != nil {
		return nil, err
	}
	return decodeWishlists(body)
}

func (c *Collections) Items(ctx context.Context) ([]model.WishlistItem, error) {
	body, err := c.store.Get(ctx, c.itemsKey)
	if err != nil {
		return nil, err
	}
	return decodeItems(body)
}

// SaveWishlists overwrites the wishlists document with a single set, without
// reading it first. Concurrent writers race and the last one wins; request
// paths use Mutate instead. Used to seed or restore a dataset.
func (c *Collections) SaveWishlists(ctx context.Context, wishlists []model.Wishlist) error {
	body, err := encode(wishlists)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.wishlistsKey, body)
}

// SaveItems is SaveWishlists for the items document.
func (c *Collections) SaveItems(ctx context.Context, items []model.WishlistItem) error {
	body, err := encode(items)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.itemsKey, body)
}

// Mutate loads both collections, lets fn edit them in place and writes back
// the documents whose encoding changed, all in one store transaction. When fn
// returns an error nothing is written.
func (c *Collections) Mutate(ctx context.Context, fn func(*Snapshot) error) error {
	keys := []string{c.wishlistsKey, c.itemsKey}

	return c.store.Update(ctx, keys, func(docs map[string][]byte) (map[string][]byte, error) {
		wishlists, err := decodeWishlists(docs[c.wishlistsKey])
		if err != nil {
			return nil, err
		}
		items, err := decodeItems(docs[c.itemsKey])
		if err != nil {
			return nil, err
		}

		snap := &Snapshot{Wishlists: wishlists, Items: items}
		if err := fn(snap); err != nil {
			return nil, err
		}

		writes := make(map[string][]byte, 2)
		if err := stage(writes, c.wishlistsKey, docs[c.wishlistsKey], snap.Wishlists); err != nil {
			return nil, err
		}
		if err := stage(writes, c.itemsKey, docs[c.itemsKey], snap.Items); err != nil {
			return nil, err
		}
		return writes, nil
	})
}

func stage(writes map[string][]byte, key string, original []byte, v interface{}) error {
	body, err := encode(v)
	if err != nil {
		return err
	}
	if original == nil && bytes.Equal(body, []byte("[]")) {
		return nil
	}
	if !bytes.Equal(body, original) {
		writes[key] = body
	}
	return nil
}

func encode(v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return body, nil
}

func decodeWishlists(body []byte) ([]model.Wishlist, error) {
	wishlists := []model.Wishlist{}
	if len(body) == 0 {
		return wishlists, nil
	}
	if err := json.Unmarshal(body, &wishlists); err != nil {
		return nil, fmt.Errorf("decode wishlists document: %w", err)
	}
	if wishlists == nil {
		wishlists = []model.Wishlist{}
	}
	return wishlists, nil
}

func decodeItems(body []byte) ([]model.WishlistItem, error) {
	items := []model.WishlistItem{}
	if len(body) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode items document: %w", err)
	}
	if items == nil {
		items = []model.WishlistItem{}
	}
	for i := range items {
		if items[i].Tags == nil {
			items[i].Tags = []string{}
		}
	}
	return items, nil
}
