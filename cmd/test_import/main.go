package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/raushankrgupta/skinbox/scrapers"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	urls := os.Args[1:]
	if len(urls) == 0 {
		urls = []string{
			"https://goldapple.ru/19000006435-hydrating-cleanser",
			"https://www.letu.ru/product/la-roche-posay-effaclar-serum/135300048",
			"https://www.wildberries.ru/catalog/14253817/detail.aspx",
		}
	}

	logger := utils.NewLogger("info", "console", os.Stderr)
	log.Logger = logger
	importer := scrapers.NewImporter(os.Getenv("IMPORT_BROWSER_FALLBACK") == "true", nil, logger)
	ctx := context.Background()

	for _, u := range urls {
		fmt.Printf("Testing URL: %s\n", u)
		scraper, resolved, err := importer.GetScraper(ctx, u)
		if err != nil {
			logger.Error().Err(err).Str("url", u).Msg("no scraper")
			continue
		}
		fmt.Printf("Resolved URL: %s\n", resolved)
		fmt.Printf("Scraper: %T\n", scraper)

		item, err := importer.Import(ctx, u, "")
		if err != nil {
			logger.Error().Err(err).Str("url", u).Msg("import failed")
			continue
		}

		b, _ := json.MarshalIndent(item, "", "  ")
		fmt.Printf("Draft: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}
}
