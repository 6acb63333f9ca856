package opengraph

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/scrapers/base"
)

// OpenGraphScraper reads product pages that publish OpenGraph or schema.org Product markup.
// Most storefronts do, so it accepts any http(s) URL.
type OpenGraphScraper struct {
	*base.BaseScraper
}

func NewOpenGraphScraper(fetcher *base.BaseScraper) *OpenGraphScraper {
	return &OpenGraphScraper{BaseScraper: fetcher}
}

func (s *OpenGraphScraper) CanScrape(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *OpenGraphScraper) ScrapeProduct(ctx context.Context, rawURL string) (*models.CatalogItem, error) {
	doc, err := s.FetchDocument(ctx, rawURL, HasProductData)
	if err != nil {
		return nil, err
	}
	item := Parse(doc)
	if item.Name == "" {
		return nil, fmt.Errorf("no product name found at %s", rawURL)
	}
	return item, nil
}

// HasProductData accepts pages that name a product in either markup
func HasProductData(doc *goquery.Document) bool {
	if base.IsBlocked(doc) {
		return false
	}
	return meta(doc, "og:title") != "" || findLDProduct(doc) != nil
}

// Parse builds a draft catalog item. JSON-LD wins over OpenGraph where both are present.
// The draft has no ID and its category is guessed from the name.
func Parse(doc *goquery.Document) *models.CatalogItem {
	item := &models.CatalogItem{
		Name:        meta(doc, "og:title"),
		Description: meta(doc, "og:description"),
		ImageURL:    meta(doc, "og:image"),
		Brand:       meta(doc, "product:brand"),
		Price:       ParsePrice(meta(doc, "product:price:amount")),
	}

	if p := findLDProduct(doc); p != nil {
		if p.Name != "" {
			item.Name = p.Name
		}
		if p.Description != "" {
			item.Description = p.Description
		}
		if img := firstString(p.Image); img != "" {
			item.ImageURL = img
		}
		if brand := p.brandName(); brand != "" {
			item.Brand = brand
		}
		if price := p.price(); price > 0 {
			item.Price = price
		}
	}

	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)
	item.Category = GuessCategory(item.Name + " " + item.Description)
	return item
}

func meta(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q]`, property))
	if sel.Length() == 0 {
		sel = doc.Find(fmt.Sprintf(`meta[name=%q]`, property))
	}
	content, _ := sel.First().Attr("content")
	return strings.TrimSpace(content)
}

// ParsePrice reads amounts like "1 290,00" or "1290.5" and rounds to whole units
func ParsePrice(s string) int64 {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		case r == ',':
			return '.'
		}
		return -1
	}, s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(math.Round(f))
}

var categoryKeywords = []struct {
	category models.Category
	words    []string
}{
	// sunscreens are often called creams, so SPF is checked first
	{models.CategorySPF, []string{"spf", "sunscreen", "солнцезащит", "санскрин"}},
	{models.CategoryCleanser, []string{"cleanser", "cleansing", "foam", "умыван", "пенка", "очищающ"}},
	{models.CategorySerum, []string{"serum", "сыворотка", "ampoule", "ампула"}},
	{models.CategoryCream, []string{"cream", "moisturizer", "крем"}},
}

// GuessCategory picks a catalog category from product text, falling back to other
func GuessCategory(text string) models.Category {
	text = strings.ToLower(text)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(text, w) {
				return ck.category
			}
		}
	}
	return models.CategoryOther
}

type ldProduct struct {
	Type        any    `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       any    `json:"image"`
	Brand       any    `json:"brand"`
	Offers      any    `json:"offers"`
}

func (p *ldProduct) brandName() string {
	switch b := p.Brand.(type) {
	case string:
		return b
	case map[string]any:
		name, _ := b["name"].(string)
		return name
	}
	return ""
}

func (p *ldProduct) price() int64 {
	offers := p.Offers
	if list, ok := offers.([]any); ok && len(list) > 0 {
		offers = list[0]
	}
	o, ok := offers.(map[string]any)
	if !ok {
		return 0
	}
	for _, key := range []string{"price", "lowPrice"} {
		switch v := o[key].(type) {
		case string:
			return ParsePrice(v)
		case float64:
			return int64(math.Round(v))
		}
	}
	return 0
}

func findLDProduct(doc *goquery.Document) *ldProduct {
	var found *ldProduct
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := []byte(strings.TrimSpace(s.Text()))

		var candidates []ldProduct
		var single ldProduct
		if err := json.Unmarshal(raw, &single); err == nil {
			candidates = append(candidates, single)
		} else if err := json.Unmarshal(raw, &candidates); err != nil {
			return true
		}

		for i := range candidates {
			if isProductType(candidates[i].Type) {
				found = &candidates[i]
				return false
			}
		}
		return true
	})
	return found
}

func isProductType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Product"
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && s == "Product" {
				return true
			}
		}
	}
	return false
}

func firstString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		for _, e := range x {
			if s, ok := e.(string); ok {
				return s
			}
		}
	case map[string]any:
		u, _ := x["url"].(string)
		return u
	}
	return ""
}
