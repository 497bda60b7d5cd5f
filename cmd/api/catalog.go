package main

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"prosmart/internal/catalog"
	"prosmart/internal/store"

	"github.com/go-chi/chi/v5"
)

// getCategoriesHandler godoc
//
//	@Summary	List all categories
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/categories [get]
func (app *application) getCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponseWithCount(w, http.StatusOK, categories, len(categories))
}

// getSubcategoriesHandler godoc
//
//	@Summary	List all subcategories
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/subcategories [get]
func (app *application) getSubcategoriesHandler(w http.ResponseWriter, r *http.Request) {
	subcategories, err := app.store.Subcategories.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponseWithCount(w, http.StatusOK, subcategories, len(subcategories))
}

// getSubcategoriesByCategoryHandler godoc
//
//	@Summary	List subcategories of a category
//	@Tags		catalog
//	@Produce	json
//	@Param		categoryID	path		string	true	"category id"
//	@Success	200			{object}	map[string]any
//	@Router		/subcategories/{categoryID} [get]
func (app *application) getSubcategoriesByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	subcategories, err := app.store.Subcategories.ListByCategory(r.Context(), categoryID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponseWithCount(w, http.StatusOK, subcategories, len(subcategories))
}

// getCategoriesWithProductsHandler godoc
//
//	@Summary		Nested catalog tree
//	@Description	Categories with their subcategories and the products nested inside each, as rendered by the storefront browse page.
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/categories-with-products [get]
func (app *application) getCategoriesWithProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := app.store.Categories.List(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	subcategories, err := app.store.Subcategories.List(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	products, err := app.store.Products.List(ctx, store.ProductFilter{})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, catalog.Build(categories, subcategories, products))
}

// The storefront concatenates category_id and subcategory_id into one URL
// segment with no separator. Splitting relies on the naming convention that
// category ids start with "cat" and subcategory ids with "subcat" (hyphen or
// underscore after the prefix).
var compositeIDPattern = regexp.MustCompile(`^(cat[-_][^/]+)(subcat[-_][^/]+)$`)

// getProductByCompositeIDHandler godoc
//
//	@Summary		Storefront product detail
//	@Description	Looks up a product by the concatenated category+subcategory segment and the product id.
//	@Tags			products
//	@Produce		json
//	@Param			catIDSubcatID	path		string	true	"category_id immediately followed by subcategory_id"
//	@Param			productID		path		string	true	"product id"
//	@Success		200				{object}	map[string]any
//	@Failure		400				{object}	map[string]any
//	@Failure		404				{object}	map[string]any
//	@Router			/products/{catIDSubcatID}/{productID} [get]
func (app *application) getProductByCompositeIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	composite := chi.URLParam(r, "catIDSubcatID")
	productID := chi.URLParam(r, "productID")

	match := compositeIDPattern.FindStringSubmatch(composite)
	if match == nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid catidsubcatid format"))
		return
	}
	categoryID, subcategoryID := match[1], match[2]

	product, err := app.store.Products.GetByTriple(ctx, categoryID, subcategoryID, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	// Display names fall back to empty strings here; the storefront detail
	// page renders them verbatim.
	enriched := catalog.EnrichedProduct{Product: *product}
	if category, err := app.store.Categories.GetByID(ctx, product.CategoryID); err == nil {
		enriched.CategoryName = category.CategoryName
	}
	if subcategory, err := app.store.Subcategories.GetByID(ctx, product.SubcategoryID); err == nil {
		enriched.SubcategoryName = subcategory.SubcategoryName
	}

	app.jsonResponse(w, http.StatusOK, enriched)
}
