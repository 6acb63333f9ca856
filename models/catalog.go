package models

import (
	"fmt"
	"strings"
)

// Category is the product type shown in the catalog
type Category string

const (
	CategoryCleanser Category = "cleanser"
	CategorySerum    Category = "serum"
	CategoryCream    Category = "cream"
	CategorySPF      Category = "spf"
	CategoryOther    Category = "other"
)

// Categories lists every known category in display order
var Categories = []Category{CategoryCleanser, CategorySerum, CategoryCream, CategorySPF, CategoryOther}

// ParseCategory maps free-form input onto a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// CatalogItem represents a product that can be put into a box
type CatalogItem struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Brand       string   `bson:"brand" json:"brand"`
	Category    Category `bson:"category" json:"type"`
	Price       int64    `bson:"price" json:"price"` // whole currency units
	Description string   `bson:"description" json:"description"`
	ImageURL    string   `bson:"image_url" json:"imageUrl"`
}

// Validate checks the fields catalog management must always fill in
func (c CatalogItem) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("catalog item id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("catalog item name is required")
	}
	if c.Price < 0 {
		return fmt.Errorf("catalog item price must not be negative")
	}
	if _, err := ParseCategory(string(c.Category)); err != nil {
		return err
	}
	return nil
}
