package controllers

import (
	"io"
	"testing"

	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func testCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.New([]catalog.Product{
		{
			ID:       "arg-home-24",
			TitleEN:  "Argentina Home Jersey 2024",
			TitleBN:  "আর্জেন্টিনা হোম জার্সি ২০২৪",
			Slug:     "argentina-home-2024",
			PriceBDT: 799,
			Sizes:    []string{"M", "L", "XL"},
			Stock:    map[string]int{"M": 5, "L": 2, "XL": 0},
			Category: "international",
		},
		{
			ID:       "bra-away-24",
			TitleEN:  "Brazil Away Jersey 2024",
			TitleBN:  "ব্রাজিল অ্যাওয়ে জার্সি ২০২৪",
			Slug:     "brazil-away-2024",
			PriceBDT: 1000,
			Sizes:    []string{"S", "M"},
			Stock:    map[string]int{"S": 3, "M": 4},
			Category: "international",
		},
		{
			ID:       "abahani-home-24",
			TitleEN:  "Abahani Limited Home Jersey",
			TitleBN:  "আবাহনী লিমিটেড হোম জার্সি",
			Slug:     "abahani-home-2024",
			PriceBDT: 599,
			Sizes:    []string{"M", "L"},
			Stock:    map[string]int{"M": 10, "L": 10},
			Category: "club",
		},
	})
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return store
}
