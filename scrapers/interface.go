package scrapers

import (
	"context"

	"github.com/raushankrgupta/skinbox/models"
)

// Scraper defines the interface for all product scrapers
type Scraper interface {
	// CanScrape checks if the scraper can handle the given URL
	CanScrape(url string) bool
	// ScrapeProduct scrapes a draft catalog item from the given URL
	ScrapeProduct(ctx context.Context, url string) (*models.CatalogItem, error)
}
