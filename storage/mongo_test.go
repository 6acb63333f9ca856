package storage_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/stretchr/testify/require"
)

// newMongoGateway needs a reachable server in MONGO_TEST_URI; each test gets its own database
func newMongoGateway(t *testing.T) *storage.MongoGateway {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := utils.ConnectMongo(ctx, uri)
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("skinbox_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return storage.NewMongoGateway(db)
}

func TestMongoCatalogSeededInOrder(t *testing.T) {
	ctx := context.Background()
	gw := newMongoGateway(t)

	for i := 0; i < 2; i++ {
		items, err := gw.GetCatalog(ctx)
		require.NoError(t, err)
		require.Equal(t, storage.DefaultCatalog(), items)
	}

	item := models.CatalogItem{ID: "p9", Name: "Тоник", Category: models.CategoryOther, Price: 700}
	require.NoError(t, gw.AddCatalogItem(ctx, item))
	require.ErrorIs(t, gw.AddCatalogItem(ctx, item), storage.ErrAlreadyExists)
	require.ErrorIs(t, gw.UpdateCatalogItem(ctx, models.CatalogItem{ID: "nope"}), storage.ErrNotFound)

	for _, it := range storage.DefaultCatalog() {
		require.NoError(t, gw.DeleteCatalogItem(ctx, it.ID))
	}
	require.NoError(t, gw.DeleteCatalogItem(ctx, "p9"))
	items, err := gw.GetCatalog(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestMongoBoxesAndSession(t *testing.T) {
	ctx := context.Background()
	gw := newMongoGateway(t)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"b1", "b2", "b3"} {
		user := "anna"
		if id == "b2" {
			user = "boris"
		}
		require.NoError(t, gw.SaveBox(ctx, models.Box{
			ID: id, UserID: user, CreatedAt: base.Add(time.Duration(i) * time.Hour), Status: models.BoxStatusCreated,
		}))
	}

	mine, err := gw.GetBoxesForUser(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "b3", mine[0].ID)

	require.NoError(t, gw.UpdateBoxStatus(ctx, "b1", models.BoxStatusOrdered))
	box, err := gw.GetBox(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, models.BoxStatusOrdered, box.Status)
	_, err = gw.GetBox(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	current, err := gw.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, current)

	identity := models.SessionIdentity{ID: "admin-id", Email: "admin@skinglow.ru", Name: "admin", Role: models.RoleAdmin}
	require.NoError(t, gw.SetSession(ctx, identity))
	current, err = gw.GetSession(ctx)
	require.NoError(t, err)
	require.Equal(t, identity, *current)
	require.NoError(t, gw.ClearSession(ctx))
	current, err = gw.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, current)
}
