package storage_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/stretchr/testify/require"
)

func newGateway() (*storage.KVGateway, *storage.MemoryKV) {
	kv := storage.NewMemoryKV()
	return storage.NewKVGateway(kv), kv
}

func TestGetCatalogSeedsOnce(t *testing.T) {
	ctx := context.Background()
	gw, kv := newGateway()

	_, found, err := kv.Get(ctx, "skinglow_products")
	require.NoError(t, err)
	require.False(t, found)

	first, err := gw.GetCatalog(ctx)
	require.NoError(t, err)
	require.Equal(t, storage.DefaultCatalog(), first)
	require.Len(t, first, 8)

	raw, found, err := kv.Get(ctx, "skinglow_products")
	require.NoError(t, err)
	require.True(t, found)
	var persisted []models.CatalogItem
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Equal(t, first, persisted)

	second, err := gw.GetCatalog(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCatalogCRUD(t *testing.T) {
	ctx := context.Background()
	gw, _ := newGateway()

	item := models.CatalogItem{ID: "p9", Name: "Toner", Brand: "Acme", Category: models.CategoryOther, Price: 700}
	require.NoError(t, gw.AddCatalogItem(ctx, item))
	require.ErrorIs(t, gw.AddCatalogItem(ctx, item), storage.ErrAlreadyExists)

	items, err := gw.GetCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 9)
	require.Equal(t, item, items[8])

	item.Price = 750
	require.NoError(t, gw.UpdateCatalogItem(ctx, item))
	items, err = gw.GetCatalog(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(750), items[8].Price)

	require.ErrorIs(t, gw.UpdateCatalogItem(ctx, models.CatalogItem{ID: "nope"}), storage.ErrNotFound)

	require.NoError(t, gw.DeleteCatalogItem(ctx, "p9"))
	require.ErrorIs(t, gw.DeleteCatalogItem(ctx, "p9"), storage.ErrNotFound)
	items, err = gw.GetCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 8)
}

func TestEmptiedCatalogIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	gw, _ := newGateway()

	items, err := gw.GetCatalog(ctx)
	require.NoError(t, err)
	for _, item := range items {
		require.NoError(t, gw.DeleteCatalogItem(ctx, item.ID))
	}

	items, err = gw.GetCatalog(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestBoxesForUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	gw, _ := newGateway()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, gw.SaveBox(ctx, models.Box{ID: "b1", UserID: "u1", CreatedAt: base, Status: models.BoxStatusCreated}))
	require.NoError(t, gw.SaveBox(ctx, models.Box{ID: "b2", UserID: "u2", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, gw.SaveBox(ctx, models.Box{ID: "b3", UserID: "u1", CreatedAt: base.Add(2 * time.Hour)}))

	all, err := gw.GetAllBoxes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	own, err := gw.GetBoxesForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, own, 2)
	require.Equal(t, "b3", own[0].ID)
	require.Equal(t, "b1", own[1].ID)

	none, err := gw.GetBoxesForUser(ctx, "ghost")
	require.NoError(t, err)
	require.Empty(t, none)

	require.NoError(t, gw.UpdateBoxStatus(ctx, "b1", models.BoxStatusOrdered))
	b1, err := gw.GetBox(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, models.BoxStatusOrdered, b1.Status)

	_, err = gw.GetBox(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.ErrorIs(t, gw.UpdateBoxStatus(ctx, "missing", models.BoxStatusOrdered), storage.ErrNotFound)
}

func TestSessionSlot(t *testing.T) {
	ctx := context.Background()
	gw, _ := newGateway()

	current, err := gw.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, current)

	identity := models.SessionIdentity{ID: "anna@example.com", Email: "anna@example.com", Name: "anna", Role: models.RoleUser}
	require.NoError(t, gw.SetSession(ctx, identity))

	current, err = gw.GetSession(ctx)
	require.NoError(t, err)
	require.Equal(t, &identity, current)

	require.NoError(t, gw.ClearSession(ctx))
	current, err = gw.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, current)
}
