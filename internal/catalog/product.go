package catalog

// Product is one catalog record as supplied by the store's product feed.
// The catalog never mutates after load; cart line items hold references to
// these records for the lifetime of a session.
type Product struct {
	ID            string         `json:"id"`
	TitleEN       string         `json:"title_en"`
	TitleBN       string         `json:"title_bn"`
	Slug          string         `json:"slug"`
	PriceBDT      int            `json:"price_bdt"`
	OriginalPrice int            `json:"original_price"`
	Discount      int            `json:"discount"`
	Images        []string       `json:"images"`
	Sizes         []string       `json:"sizes"`
	Stock         map[string]int `json:"stock"`
	DescriptionEN string         `json:"description_en"`
	DescriptionBN string         `json:"description_bn"`
	Tags          []string       `json:"tags"`
	Category      string         `json:"category"`
	Available     bool           `json:"available"`
	WeightKG      float64        `json:"weight_kg"`
	ReleaseDate   string         `json:"release_date"`
}

// StockFor returns the purchasable count for a size, treating unknown sizes
// as out of stock.
func (p *Product) StockFor(size string) int {
	if p == nil || p.Stock == nil {
		return 0
	}
	return p.Stock[size]
}
