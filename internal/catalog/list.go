package catalog

import (
	"math"
	"sort"
	"strings"

	"prosmart/internal/store"
)

// EnrichedProduct is a product with its category and subcategory display
// names joined in, as served by the flat list views.
type EnrichedProduct struct {
	store.Product   `bson:",inline"`
	CategoryName    string `json:"category_name"`
	SubcategoryName string `json:"subcategory_name"`
}

// PageMeta is the pagination block returned alongside a paginated product
// slice.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type Page struct {
	Products []EnrichedProduct
	Meta     PageMeta
}

// Enrich joins display names onto products. Unresolvable category or
// subcategory references fall back to "Unknown" rather than dropping the
// product, unlike the nested tree built by Build.
func Enrich(products []store.Product, categories []store.Category, subcategories []store.Subcategory) []EnrichedProduct {
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.CategoryID] = c.CategoryName
	}
	subcategoryNames := make(map[string]string, len(subcategories))
	for _, s := range subcategories {
		subcategoryNames[s.SubcategoryID] = s.SubcategoryName
	}

	enriched := make([]EnrichedProduct, 0, len(products))
	for _, p := range products {
		categoryName, ok := categoryNames[p.CategoryID]
		if !ok {
			categoryName = "Unknown"
		}
		subcategoryName, ok := subcategoryNames[p.SubcategoryID]
		if !ok {
			subcategoryName = "Unknown"
		}
		enriched = append(enriched, EnrichedProduct{
			Product:         p,
			CategoryName:    categoryName,
			SubcategoryName: subcategoryName,
		})
	}
	return enriched
}

// MatchesSearch reports whether the term occurs, case-insensitively, in the
// product's name, title or description. An empty term matches everything.
func MatchesSearch(p store.Product, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.ProductName), term) ||
		strings.Contains(strings.ToLower(p.ProductTitle), term) ||
		strings.Contains(strings.ToLower(p.ProductDescription), term)
}

// FilterBySearch keeps the products matching the term. The same predicate is
// applied before counting and before slicing, so total and page contents
// always agree.
func FilterBySearch(products []store.Product, term string) []store.Product {
	if term == "" {
		return products
	}
	matched := []store.Product{}
	for _, p := range products {
		if MatchesSearch(p, term) {
			matched = append(matched, p)
		}
	}
	return matched
}

// SortByProductID sorts ascending by product_id. The collections carry no
// explicit sort key, so this is the stable order every listing uses.
func SortByProductID(products []store.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})
}

// Paginate slices out the requested page. A page past the end yields an empty
// slice, not an error; total and totalPages always describe the pre-slice
// set. page and limit must already be validated to be >= 1.
func Paginate(products []EnrichedProduct, page, limit int) Page {
	total := len(products)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Products: products[start:end],
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}
}
