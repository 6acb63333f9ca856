package boxes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/rs/zerolog"
)

// ErrInvalidTransition is returned for a status change the box lifecycle does not allow
var ErrInvalidTransition = errors.New("invalid box status transition")

// Assembler prices a recommendation against the catalog and persists the resulting box
type Assembler struct {
	gateway storage.Gateway
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewAssembler creates an Assembler writing through gateway
func NewAssembler(gateway storage.Gateway, logger zerolog.Logger) *Assembler {
	return &Assembler{
		gateway: gateway,
		logger:  logger.With().Str("component", "boxes").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Resolve maps ids onto catalog items in order; ids missing from the catalog are skipped
func Resolve(ids []string, catalog []models.CatalogItem) []models.CatalogItem {
	byID := make(map[string]models.CatalogItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	products := make([]models.CatalogItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			products = append(products, item)
		}
	}
	return products
}

// TotalPrice sums the prices of items
func TotalPrice(items []models.CatalogItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// Assemble builds a new box for userID and saves it before returning.
// Nothing is returned when the save fails.
func (a *Assembler) Assemble(ctx context.Context, userID string, profile models.DiagnosticProfile, rec models.Recommendation, catalog []models.CatalogItem) (models.Box, error) {
	products := Resolve(rec.ProductIDs, catalog)
	if dropped := len(rec.ProductIDs) - len(products); dropped > 0 {
		a.logger.Warn().Int("dropped", dropped).Msg("recommended products missing from catalog")
	}

	box := models.Box{
		ID:             a.newID(),
		UserID:         userID,
		CreatedAt:      a.now(),
		Profile:        profile,
		Recommendation: rec,
		Products:       products,
		TotalPrice:     TotalPrice(products),
		Status:         models.BoxStatusCreated,
	}

	if err := a.gateway.SaveBox(ctx, box); err != nil {
		return models.Box{}, fmt.Errorf("save box: %w", err)
	}

	a.logger.Info().
		Str("box_id", box.ID).
		Str("user_id", userID).
		Int("products", len(products)).
		Int64("total_price", box.TotalPrice).
		Msg("box assembled")
	return box, nil
}

// Transition moves a stored box to status if the lifecycle allows it
func (a *Assembler) Transition(ctx context.Context, boxID string, status models.BoxStatus) (models.Box, error) {
	box, err := a.gateway.GetBox(ctx, boxID)
	if err != nil {
		return models.Box{}, err
	}
	if !box.Status.CanTransition(status) {
		return models.Box{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, box.Status, status)
	}
	if err := a.gateway.UpdateBoxStatus(ctx, boxID, status); err != nil {
		return models.Box{}, fmt.Errorf("update box status: %w", err)
	}

	a.logger.Info().Str("box_id", boxID).Str("from", string(box.Status)).Str("to", string(status)).Msg("box status changed")
	box.Status = status
	return box, nil
}
