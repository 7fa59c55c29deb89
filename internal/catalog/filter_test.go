package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixtureProducts() []Product {
	return []Product{
		{Name: "Sauvage", Brand: "Dior", Price: 45000, Category: CategoryHomme},
		{Name: "La Vie Est Belle", Brand: "Lancôme", Price: 52000, Category: CategoryFemme},
		{Name: "Éclat Mystère", Brand: "", Price: 30000, Category: CategoryUnisexe},
		{Name: "Bleu de Chanel", Brand: "Chanel", Price: 58000, Category: CategoryHomme},
		{Name: "Ambre Nuit", Brand: "Dior", Price: 30000, Category: CategoryUnisexe},
	}
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func Test_Apply_Filters(t *testing.T) {
	testCases := []struct {
		name     string
		spec     FilterSpec
		expected []string
	}{
		{
			name:     "zero spec passes everything through in input order",
			spec:     FilterSpec{},
			expected: []string{"Sauvage", "La Vie Est Belle", "Éclat Mystère", "Bleu de Chanel", "Ambre Nuit"},
		},
		{
			name:     "search matches product name case-insensitively",
			spec:     FilterSpec{Search: "sauvage"},
			expected: []string{"Sauvage"},
		},
		{
			name:     "search matches brand too",
			spec:     FilterSpec{Search: "DIOR"},
			expected: []string{"Sauvage", "Ambre Nuit"},
		},
		{
			name:     "search matches fallback brand label",
			spec:     FilterSpec{Search: "autre"},
			expected: []string{"Éclat Mystère"},
		},
		{
			name:     "category equality",
			spec:     FilterSpec{Category: CategoryHomme},
			expected: []string{"Sauvage", "Bleu de Chanel"},
		},
		{
			name:     "category wildcard matches all",
			spec:     FilterSpec{Category: CategoryAll},
			expected: []string{"Sauvage", "La Vie Est Belle", "Éclat Mystère", "Bleu de Chanel", "Ambre Nuit"},
		},
		{
			name:     "brand set membership",
			spec:     FilterSpec{Brands: []string{"Dior", "Chanel"}},
			expected: []string{"Sauvage", "Bleu de Chanel", "Ambre Nuit"},
		},
		{
			name:     "unbranded products selectable via fallback label",
			spec:     FilterSpec{Brands: []string{FallbackBrand}},
			expected: []string{"Éclat Mystère"},
		},
		{
			name:     "price range bounds are inclusive",
			spec:     FilterSpec{MinPrice: 45000, MaxPrice: 52000},
			expected: []string{"Sauvage", "La Vie Est Belle"},
		},
		{
			name:     "zero max price leaves range unbounded above",
			spec:     FilterSpec{MinPrice: 52000},
			expected: []string{"La Vie Est Belle", "Bleu de Chanel"},
		},
		{
			name:     "predicates combine with AND",
			spec:     FilterSpec{Search: "dior", Category: CategoryUnisexe, MaxPrice: 30000},
			expected: []string{"Ambre Nuit"},
		},
		{
			name:     "empty result is a valid outcome",
			spec:     FilterSpec{Search: "introuvable"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			products := fixtureProducts()
			// when
			got := Apply(products, tc.spec)
			// then
			assert.Equal(t, tc.expected, names(got))
		})
	}
}

func Test_Apply_Sorts(t *testing.T) {
	testCases := []struct {
		name     string
		sort     SortKey
		expected []string
	}{
		{
			name:     "price ascending, stable for equal prices",
			sort:     SortPriceAsc,
			expected: []string{"Éclat Mystère", "Ambre Nuit", "Sauvage", "La Vie Est Belle", "Bleu de Chanel"},
		},
		{
			name:     "price descending, stable for equal prices",
			sort:     SortPriceDesc,
			expected: []string{"Bleu de Chanel", "La Vie Est Belle", "Sauvage", "Éclat Mystère", "Ambre Nuit"},
		},
		{
			name:     "name sort collates accented names in place",
			sort:     SortName,
			expected: []string{"Ambre Nuit", "Bleu de Chanel", "Éclat Mystère", "La Vie Est Belle", "Sauvage"},
		},
		{
			name:     "unknown key preserves input order",
			sort:     SortKey("popularity"),
			expected: []string{"Sauvage", "La Vie Est Belle", "Éclat Mystère", "Bleu de Chanel", "Ambre Nuit"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			products := fixtureProducts()
			// when
			got := Apply(products, FilterSpec{Sort: tc.sort})
			// then
			assert.Equal(t, tc.expected, names(got))
		})
	}
}

func Test_Apply_DoesNotMutateInput(t *testing.T) {
	// given
	products := fixtureProducts()
	// when
	_ = Apply(products, FilterSpec{Sort: SortPriceAsc})
	// then
	assert.Equal(t, names(fixtureProducts()), names(products))
}

func Test_DistinctBrands(t *testing.T) {
	// given
	products := fixtureProducts()
	// when
	brands := DistinctBrands(products)
	// then: deduplicated, collated, fallback label absent
	assert.Equal(t, []string{"Chanel", "Dior", "Lancôme"}, brands)
	assert.NotContains(t, brands, FallbackBrand)
}
