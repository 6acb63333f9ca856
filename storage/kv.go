package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/raushankrgupta/skinbox/models"
)

const (
	productsKey = "skinglow_products"
	boxesKey    = "skinglow_boxes"
	userKey     = "skinglow_user"
)

// KV is a flat key-value store holding JSON documents
type KV interface {
	// Get reports found=false when the key has never been written or was deleted
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KVGateway keeps each collection as a single JSON document in a KV store.
// Read-modify-write cycles are serialized within the process only.
type KVGateway struct {
	mu sync.Mutex
	kv KV
}

// NewKVGateway creates a Gateway on top of kv
func NewKVGateway(kv KV) *KVGateway {
	return &KVGateway{kv: kv}
}

func (g *KVGateway) load(ctx context.Context, key string, out any) (bool, error) {
	raw, found, err := g.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (g *KVGateway) store(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := g.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// GetCatalog seeds the default catalog only when the key is absent; an emptied catalog stays empty
func (g *KVGateway) GetCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.catalog(ctx)
}

func (g *KVGateway) catalog(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	found, err := g.load(ctx, productsKey, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		items = DefaultCatalog()
		if err := g.store(ctx, productsKey, items); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []models.CatalogItem{}
	}
	return items, nil
}

func (g *KVGateway) AddCatalogItem(ctx context.Context, item models.CatalogItem) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	items, err := g.catalog(ctx)
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.ID == item.ID {
			return fmt.Errorf("catalog item %s: %w", item.ID, ErrAlreadyExists)
		}
	}
	return g.store(ctx, productsKey, append(items, item))
}

func (g *KVGateway) UpdateCatalogItem(ctx context.Context, item models.CatalogItem) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	items, err := g.catalog(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return g.store(ctx, productsKey, items)
		}
	}
	return fmt.Errorf("catalog item %s: %w", item.ID, ErrNotFound)
}

func (g *KVGateway) DeleteCatalogItem(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	items, err := g.catalog(ctx)
	if err != nil {
		return err
	}
	filtered := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(items) {
		return fmt.Errorf("catalog item %s: %w", id, ErrNotFound)
	}
	return g.store(ctx, productsKey, filtered)
}

func (g *KVGateway) GetAllBoxes(ctx context.Context) ([]models.Box, error) {
	var boxes []models.Box
	if _, err := g.load(ctx, boxesKey, &boxes); err != nil {
		return nil, err
	}
	if boxes == nil {
		boxes = []models.Box{}
	}
	return boxes, nil
}

func (g *KVGateway) GetBoxesForUser(ctx context.Context, userID string) ([]models.Box, error) {
	boxes, err := g.GetAllBoxes(ctx)
	if err != nil {
		return nil, err
	}
	own := make([]models.Box, 0, len(boxes))
	for _, b := range boxes {
		if b.UserID == userID {
			own = append(own, b)
		}
	}
	SortNewestFirst(own)
	return own, nil
}

func (g *KVGateway) GetBox(ctx context.Context, id string) (models.Box, error) {
	boxes, err := g.GetAllBoxes(ctx)
	if err != nil {
		return models.Box{}, err
	}
	for _, b := range boxes {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Box{}, fmt.Errorf("box %s: %w", id, ErrNotFound)
}

func (g *KVGateway) SaveBox(ctx context.Context, box models.Box) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	boxes, err := g.GetAllBoxes(ctx)
	if err != nil {
		return err
	}
	return g.store(ctx, boxesKey, append(boxes, box))
}

func (g *KVGateway) UpdateBoxStatus(ctx context.Context, id string, status models.BoxStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	boxes, err := g.GetAllBoxes(ctx)
	if err != nil {
		return err
	}
	for i := range boxes {
		if boxes[i].ID == id {
			boxes[i].Status = status
			return g.store(ctx, boxesKey, boxes)
		}
	}
	return fmt.Errorf("box %s: %w", id, ErrNotFound)
}

func (g *KVGateway) GetSession(ctx context.Context) (*models.SessionIdentity, error) {
	var identity models.SessionIdentity
	found, err := g.load(ctx, userKey, &identity)
	if err != nil || !found {
		return nil, err
	}
	return &identity, nil
}

func (g *KVGateway) SetSession(ctx context.Context, identity models.SessionIdentity) error {
	return g.store(ctx, userKey, identity)
}

func (g *KVGateway) ClearSession(ctx context.Context) error {
	if err := g.kv.Delete(ctx, userKey); err != nil {
		return fmt.Errorf("delete %s: %w", userKey, err)
	}
	return nil
}

// SortNewestFirst orders boxes by creation time, latest first
func SortNewestFirst(boxes []models.Box) {
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].CreatedAt.After(boxes[j].CreatedAt)
	})
}

var _ Gateway = (*KVGateway)(nil)
