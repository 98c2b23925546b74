package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
	"go.uber.org/multierr"
)

// Store is the immutable, read-only product catalog. It is loaded once at
// startup and shared by every consumer; no operation mutates it.
type Store struct {
	products []Product
	byID     map[string]*Product
	bySlug   map[string]*Product
}

// Load reads and validates the product feed at path.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read product feed: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parse product feed: %w", err)
	}

	return New(products)
}

// New builds a catalog from an already-decoded product list. Invariant
// violations are aggregated so a broken feed reports every problem at once.
func New(products []Product) (*Store, error) {
	var violations error
	byID := make(map[string]*Product, len(products))
	bySlug := make(map[string]*Product, len(products))

	for i := range products {
		p := &products[i]
		if strings.TrimSpace(p.ID) == "" {
			violations = multierr.Append(violations, fmt.Errorf("product %d: id is required", i))
			continue
		}
		if strings.TrimSpace(p.Slug) == "" {
			violations = multierr.Append(violations, fmt.Errorf("product %s: slug is required", p.ID))
		}
		if p.PriceBDT < 0 {
			violations = multierr.Append(violations, fmt.Errorf("product %s: price_bdt must be non-negative", p.ID))
		}
		if p.OriginalPrice < 0 {
			violations = multierr.Append(violations, fmt.Errorf("product %s: original_price must be non-negative", p.ID))
		}
		sizes := make(map[string]struct{}, len(p.Sizes))
		for _, size := range p.Sizes {
			sizes[size] = struct{}{}
		}
		for size, count := range p.Stock {
			if _, ok := sizes[size]; !ok {
				violations = multierr.Append(violations, fmt.Errorf("product %s: stock size %q not in sizes", p.ID, size))
			}
			if count < 0 {
				violations = multierr.Append(violations, fmt.Errorf("product %s: stock for %q must be non-negative", p.ID, size))
			}
		}
		if _, dup := byID[p.ID]; dup {
			violations = multierr.Append(violations, fmt.Errorf("product %s: duplicate id", p.ID))
			continue
		}
		byID[p.ID] = p
		if p.Slug != "" {
			if _, dup := bySlug[p.Slug]; dup {
				violations = multierr.Append(violations, fmt.Errorf("product %s: duplicate slug %q", p.ID, p.Slug))
			} else {
				bySlug[p.Slug] = p
			}
		}
	}

	if violations != nil {
		return nil, fmt.Errorf("invalid product feed: %w", violations)
	}

	return &Store{products: products, byID: byID, bySlug: bySlug}, nil
}

// ByID looks a product up by identifier.
func (s *Store) ByID(id string) (*Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// BySlug looks a product up by URL slug.
func (s *Store) BySlug(slug string) (*Product, error) {
	if p, ok := s.bySlug[slug]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// List returns the products in feed order, optionally filtered by category.
func (s *Store) List(category string) []Product {
	if category == "" {
		out := make([]Product, len(s.products))
		copy(out, s.products)
		return out
	}
	var out []Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories present in the feed, sorted.
func (s *Store) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// Len reports the catalog size.
func (s *Store) Len() int {
	return len(s.products)
}
