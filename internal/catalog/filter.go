package catalog

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering Apply leaves the result in.
type SortKey string

const (
	// SortDefault preserves the input order.
	SortDefault   SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortName      SortKey = "name"
)

// FilterSpec describes one catalog query. Zero values disable the
// corresponding predicate: empty Search matches everything, empty or
// CategoryAll Category matches every category, an empty Brands set
// matches every brand, and MaxPrice == 0 leaves the range unbounded
// above.
type FilterSpec struct {
	Search   string
	Category Category
	Brands   []string
	MinPrice int64
	MaxPrice int64
	Sort     SortKey
}

// Apply filters products by the AND of the spec's active predicates, then
// orders the survivors by the sort key. The input slice is not modified;
// an empty result is a valid outcome, not an error.
func Apply(products []Product, spec FilterSpec) []Product {
	out := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	for _, p := range products {
		if !matchesSearch(p, search) {
			continue
		}
		if !matchesCategory(p, spec.Category) {
			continue
		}
		if len(spec.Brands) > 0 && !slices.Contains(spec.Brands, p.BrandLabel()) {
			continue
		}
		if p.Price < spec.MinPrice {
			continue
		}
		if spec.MaxPrice > 0 && p.Price > spec.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, spec.Sort)
	return out
}

func matchesSearch(p Product, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.BrandLabel()), search)
}

func matchesCategory(p Product, category Category) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return p.Category == category
}

// sortProducts orders in place. Sorts are stable so equal keys keep their
// relative input order; an unknown key behaves like SortDefault.
func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortName:
		c := collate.New(language.French)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// DistinctBrands returns the unique real brands among products, ordered
// by locale-aware collation. Unbranded products are skipped: the
// FallbackBrand display label is not a facet.
func DistinctBrands(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	brands := make([]string, 0, len(products))
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	c := collate.New(language.French)
	c.SortStrings(brands)
	return brands
}
