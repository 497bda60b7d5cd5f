// Package catalog builds the two read views served over the three flat
// collections: the nested category→subcategory→product tree used by the
// storefront browse page, and the flat filtered/paginated list used by the
// admin portal. All functions operate on documents already fetched from the
// store and have no side effects.
package catalog

import "prosmart/internal/store"

// ProductEntry is the denormalized product record nested into the tree. It
// carries the subcategory display name as plain "subcategory" and the parent
// category's main_category, the shape the storefront renders directly.
type ProductEntry struct {
	ProductID          string   `json:"product_id"`
	ProductName        string   `json:"product_name"`
	ProductTitle       string   `json:"product_title"`
	ProductDescription string   `json:"product_description"`
	ProductPrice       *float64 `json:"product_price,omitempty"`
	ImageURLs          []string `json:"image_urls"`
	CategoryID         string   `json:"category_id"`
	SubcategoryID      string   `json:"subcategory_id"`
	Subcategory        string   `json:"subcategory"`
	MainCategory       string   `json:"main_category,omitempty"`
}

type SubcategoryNode struct {
	SubcategoryID   string         `json:"subcategory_id"`
	SubcategoryName string         `json:"subcategory_name"`
	Products        []ProductEntry `json:"products"`
}

type CategoryNode struct {
	CategoryID    string                      `json:"category_id"`
	CategoryName  string                      `json:"category_name"`
	MainCategory  string                      `json:"main_category,omitempty"`
	Subcategories map[string]*SubcategoryNode `json:"subcategories"`
}

type Tree struct {
	Categories map[string]*CategoryNode `json:"categories"`
}

// Build joins the three collections into the nested tree. Subcategories whose
// category does not exist are dropped, as are products whose category or
// subcategory does not resolve. This is intentionally lossier than the flat
// view, which keeps such products with "Unknown" display names.
func Build(categories []store.Category, subcategories []store.Subcategory, products []store.Product) Tree {
	tree := Tree{Categories: make(map[string]*CategoryNode, len(categories))}

	for _, cat := range categories {
		tree.Categories[cat.CategoryID] = &CategoryNode{
			CategoryID:    cat.CategoryID,
			CategoryName:  cat.CategoryName,
			MainCategory:  cat.MainCategory,
			Subcategories: make(map[string]*SubcategoryNode),
		}
	}

	for _, sub := range subcategories {
		if cat, ok := tree.Categories[sub.CategoryID]; ok {
			cat.Subcategories[sub.SubcategoryID] = &SubcategoryNode{
				SubcategoryID:   sub.SubcategoryID,
				SubcategoryName: sub.SubcategoryName,
				Products:        []ProductEntry{},
			}
		}
	}

	for _, p := range products {
		cat, ok := tree.Categories[p.CategoryID]
		if !ok {
			continue
		}
		sub, ok := cat.Subcategories[p.SubcategoryID]
		if !ok {
			continue
		}

		imageURLs := p.ImageURLs
		if imageURLs == nil {
			imageURLs = []string{}
		}

		sub.Products = append(sub.Products, ProductEntry{
			ProductID:          p.ProductID,
			ProductName:        p.ProductName,
			ProductTitle:       p.ProductTitle,
			ProductDescription: p.ProductDescription,
			ProductPrice:       p.ProductPrice,
			ImageURLs:          imageURLs,
			CategoryID:         p.CategoryID,
			SubcategoryID:      p.SubcategoryID,
			Subcategory:        sub.SubcategoryName,
			MainCategory:       cat.MainCategory,
		})
	}

	return tree
}
