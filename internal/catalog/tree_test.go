package catalog

import (
	"testing"

	"prosmart/internal/store"
)

func sampleCollections() ([]store.Category, []store.Subcategory, []store.Product) {
	categories := []store.Category{
		{CategoryID: "cat-0001", CategoryName: "Medical Equipment", MainCategory: "Medical"},
		{CategoryID: "cat-0002", CategoryName: "Corporate Gifts"},
	}
	subcategories := []store.Subcategory{
		{SubcategoryID: "subcat-0001", SubcategoryName: "Massagers", CategoryID: "cat-0001"},
		{SubcategoryID: "subcat-0002", SubcategoryName: "Monitors", CategoryID: "cat-0001"},
		{SubcategoryID: "subcat-0003", SubcategoryName: "Drinkware", CategoryID: "cat-0002"},
		// parent category does not exist
		{SubcategoryID: "subcat-0099", SubcategoryName: "Orphans", CategoryID: "cat-0099"},
	}
	products := []store.Product{
		{ProductID: "prod-0001", ProductName: "Neck Massager", CategoryID: "cat-0001", SubcategoryID: "subcat-0001", ImageURLs: []string{"https://example.com/a.jpg"}},
		{ProductID: "prod-0002", ProductName: "BP Monitor", CategoryID: "cat-0001", SubcategoryID: "subcat-0002"},
		{ProductID: "prod-0003", ProductName: "Steel Tumbler", CategoryID: "cat-0002", SubcategoryID: "subcat-0003"},
		// category does not resolve
		{ProductID: "prod-0004", ProductName: "Ghost Product", CategoryID: "cat-0404", SubcategoryID: "subcat-0001"},
		// subcategory does not resolve within its category
		{ProductID: "prod-0005", ProductName: "Misfiled Product", CategoryID: "cat-0001", SubcategoryID: "subcat-0003"},
	}
	return categories, subcategories, products
}

func treeProductIDs(tree Tree) map[string]int {
	seen := map[string]int{}
	for _, cat := range tree.Categories {
		for _, sub := range cat.Subcategories {
			for _, p := range sub.Products {
				seen[p.ProductID]++
			}
		}
	}
	return seen
}

func TestBuildNestsEachResolvableProductExactlyOnce(t *testing.T) {
	categories, subcategories, products := sampleCollections()
	tree := Build(categories, subcategories, products)

	seen := treeProductIDs(tree)
	for _, id := range []string{"prod-0001", "prod-0002", "prod-0003"} {
		if seen[id] != 1 {
			t.Errorf("product %s appears %d times in the tree, want exactly 1", id, seen[id])
		}
	}

	p := tree.Categories["cat-0001"].Subcategories["subcat-0001"].Products[0]
	if p.ProductID != "prod-0001" {
		t.Fatalf("expected prod-0001 under cat-0001/subcat-0001, got %s", p.ProductID)
	}
	if p.Subcategory != "Massagers" {
		t.Errorf("denormalized subcategory name = %q, want Massagers", p.Subcategory)
	}
	if p.MainCategory != "Medical" {
		t.Errorf("main_category = %q, want Medical (copied from parent category)", p.MainCategory)
	}
}

func TestBuildDropsUnresolvableProducts(t *testing.T) {
	categories, subcategories, products := sampleCollections()
	tree := Build(categories, subcategories, products)

	seen := treeProductIDs(tree)
	for _, id := range []string{"prod-0004", "prod-0005"} {
		if seen[id] != 0 {
			t.Errorf("product %s should be absent from the nested tree", id)
		}
	}
}

func TestBuildDropsOrphanedSubcategories(t *testing.T) {
	categories, subcategories, products := sampleCollections()
	tree := Build(categories, subcategories, products)

	for _, cat := range tree.Categories {
		if _, ok := cat.Subcategories["subcat-0099"]; ok {
			t.Fatal("subcategory with missing parent category should be dropped")
		}
	}
}

func TestBuildEmptySubcategoryHasEmptyProductList(t *testing.T) {
	categories := []store.Category{{CategoryID: "cat-0001", CategoryName: "Medical Equipment"}}
	subcategories := []store.Subcategory{{SubcategoryID: "subcat-0001", SubcategoryName: "Massagers", CategoryID: "cat-0001"}}

	tree := Build(categories, subcategories, nil)

	products := tree.Categories["cat-0001"].Subcategories["subcat-0001"].Products
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty (non-nil) product list, got %#v", products)
	}
}
