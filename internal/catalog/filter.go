package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"atelier-storefront/internal/domain"
)

// SortKey selects the ordering applied after filtering
type SortKey string

const (
	// SortNewest is a stable boolean bucket partition: products flagged
	// new come first, everything else keeps its relative order. It is not
	// a recency sort; the catalog carries no creation timestamp.
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Criteria are the catalog filter inputs. Predicates apply conjunctively;
// zero values disable the corresponding filter.
type Criteria struct {
	Search   string
	Category domain.Category
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sizes    []string
	Colors   []string
}

// FilterAndSort is the pure catalog pipeline: it returns a new filtered and
// ordered slice and never mutates its input. Ties sort stably on input order.
func FilterAndSort(products []domain.Product, criteria Criteria, key SortKey) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, criteria) {
			result = append(result, p)
		}
	}

	switch key {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.LessThan(result[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.GreaterThan(result[j].Price)
		})
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].IsNew && !result[j].IsNew
		})
	}

	return result
}

func matches(p domain.Product, c Criteria) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Search)) {
		return false
	}

	if c.Category != "" && c.Category != "all" && p.Category != c.Category {
		return false
	}

	// Price range is inclusive on both ends
	if c.MinPrice != nil && p.Price.LessThan(*c.MinPrice) {
		return false
	}
	if c.MaxPrice != nil && p.Price.GreaterThan(*c.MaxPrice) {
		return false
	}

	if len(c.Sizes) > 0 && !anyMatch(p.Sizes, c.Sizes) {
		return false
	}

	if len(c.Colors) > 0 {
		names := make([]string, 0, len(p.Colors))
		for _, color := range p.Colors {
			names = append(names, color.Name)
		}
		if !anyMatch(names, c.Colors) {
			return false
		}
	}

	return true
}

// anyMatch reports whether available and selected share at least one value
func anyMatch(available, selected []string) bool {
	for _, a := range available {
		for _, s := range selected {
			if a == s {
				return true
			}
		}
	}
	return false
}
