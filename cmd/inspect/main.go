package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"dns-parser/adapters"
	"dns-parser/internal/types"
	"dns-parser/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// inspect loads one listing page and reports what each catalog selector
// matches, to tell a markup change apart from a network problem.
func main() {
	_ = godotenv.Load()

	var (
		urlFlag   = flag.String("url", os.Getenv("DNS_PARSE_URL"), "Listing page to inspect")
		pageFlag  = flag.Int("page", 1, "Page index to load")
		httpOnly  = flag.Bool("http-only", false, "Fetch over plain HTTP instead of a browser")
		showFirst = flag.Int("show", 3, "Number of extracted records to print")
	)
	flag.Parse()

	if *urlFlag == "" {
		log.Fatal("-url is required")
	}

	config := types.DefaultConfig()
	config.BaseURL = *urlFlag
	config.HTTPOnly = *httpOnly

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	var source adapters.ContentSource
	if config.HTTPOnly {
		source = utils.NewHTTPClient(config, logger)
	} else {
		source = utils.NewBrowserClient(config, logger)
	}
	fetcher := adapters.NewPageFetcher(source, logger)
	defer fetcher.Close()

	doc, err := fetcher.Fetch(context.Background(), config.BaseURL, *pageFlag)
	if err != nil {
		log.Printf("Failed to get listing page: %v", err)
		return
	}

	report(os.Stdout, doc, config, *showFirst)
}

func report(w io.Writer, doc adapters.Node, config *types.Config, show int) {
	sel := config.Selectors
	products := doc.QueryAll(sel.Product)

	fmt.Fprintf(w, "%-28s %d\n", sel.Product, len(products))
	counts := map[string]int{}
	for _, p := range products {
		for _, s := range []string{sel.Price, sel.Name} {
			counts[s] += len(p.QueryAll(s))
		}
		for _, price := range p.QueryAll(sel.Price) {
			counts[sel.PrevPrice] += len(price.QueryAll(sel.PrevPrice))
		}
	}
	for _, s := range []string{sel.Price, sel.PrevPrice, sel.Name} {
		fmt.Fprintf(w, "%-28s %d\n", s, counts[s])
	}

	records, err := adapters.NewDNSAdapter(config).ExtractProducts(doc)
	if err != nil {
		fmt.Fprintf(w, "\nExtraction failed: %v\n", err)
		return
	}
	if len(records) > show {
		records = records[:show]
	}
	out, _ := json.MarshalIndent(records, "", "  ")
	fmt.Fprintf(w, "\n%s\n", out)
}
