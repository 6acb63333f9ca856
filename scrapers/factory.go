package scrapers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/scrapers/base"
	"github.com/raushankrgupta/skinbox/scrapers/opengraph"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/rs/zerolog"
)

// Importer turns a product page URL into a catalog item
type Importer struct {
	scrapers []Scraper
	// images is optional; without it the item keeps the shop's image URL
	images utils.Uploader
	logger zerolog.Logger
	// resolve is swapped in tests
	resolve func(ctx context.Context, url string) (string, error)
}

// NewImporter registers the known scrapers. browserFallback enables the headless Chrome attempt.
func NewImporter(browserFallback bool, images utils.Uploader, logger zerolog.Logger) *Importer {
	fetcher := base.NewBaseScraper(browserFallback, logger)
	return &Importer{
		scrapers: []Scraper{
			opengraph.NewOpenGraphScraper(fetcher),
		},
		images:  images,
		logger:  logger.With().Str("component", "importer").Logger(),
		resolve: utils.ResolveShortenedURL,
	}
}

// GetScraper returns the appropriate scraper and the resolved URL
func (i *Importer) GetScraper(ctx context.Context, url string) (Scraper, string, error) {
	resolvedURL, err := i.resolve(ctx, url)
	if err != nil {
		return nil, url, fmt.Errorf("error resolving url: %w", err)
	}

	for _, s := range i.scrapers {
		if s.CanScrape(resolvedURL) {
			return s, resolvedURL, nil
		}
	}
	return nil, resolvedURL, fmt.Errorf("no scraper found for url: %s", resolvedURL)
}

// Import scrapes url into a catalog item with a fresh ID.
// category overrides the guessed one when set.
func (i *Importer) Import(ctx context.Context, url string, category models.Category) (models.CatalogItem, error) {
	scraper, resolved, err := i.GetScraper(ctx, url)
	if err != nil {
		return models.CatalogItem{}, err
	}

	draft, err := scraper.ScrapeProduct(ctx, resolved)
	if err != nil {
		return models.CatalogItem{}, fmt.Errorf("scrape %s: %w", resolved, err)
	}

	item := *draft
	item.ID = "p-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	if category != "" {
		item.Category = category
	}

	if i.images != nil && item.ImageURL != "" {
		key, err := utils.MirrorImage(ctx, i.images, item.ImageURL, "catalog_images")
		if err != nil {
			i.logger.Warn().Err(err).Str("image", item.ImageURL).Msg("image mirror failed, keeping shop URL")
		} else {
			item.ImageURL = key
		}
	}

	if err := item.Validate(); err != nil {
		return models.CatalogItem{}, err
	}
	return item, nil
}
