package storage

import (
	"context"
	"errors"

	"github.com/raushankrgupta/skinbox/models"
)

// ErrNotFound is returned when an update or lookup targets a missing record
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a catalog item id is taken
var ErrAlreadyExists = errors.New("already exists")

// Gateway is the persistence boundary of the recommendation pipeline.
// Implementations are read-modify-write over whole collections and are not transactional.
type Gateway interface {
	// GetCatalog returns the catalog, seeding DefaultCatalog on first access
	GetCatalog(ctx context.Context) ([]models.CatalogItem, error)
	AddCatalogItem(ctx context.Context, item models.CatalogItem) error
	UpdateCatalogItem(ctx context.Context, item models.CatalogItem) error
	DeleteCatalogItem(ctx context.Context, id string) error

	GetAllBoxes(ctx context.Context) ([]models.Box, error)
	// GetBoxesForUser returns the user's boxes newest first
	GetBoxesForUser(ctx context.Context, userID string) ([]models.Box, error)
	GetBox(ctx context.Context, id string) (models.Box, error)
	SaveBox(ctx context.Context, box models.Box) error
	UpdateBoxStatus(ctx context.Context, id string, status models.BoxStatus) error

	// GetSession returns nil when nobody is logged in
	GetSession(ctx context.Context) (*models.SessionIdentity, error)
	SetSession(ctx context.Context, identity models.SessionIdentity) error
	ClearSession(ctx context.Context) error
}
