package main

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"prosmart/internal/catalog"
	"prosmart/internal/params"
	"prosmart/internal/store"
	"prosmart/internal/uploader"

	"github.com/go-chi/chi/v5"
)

// helper: sniff first 512 bytes and reset reader
func sniffMIME(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read: %w", err)
	}
	mime := http.DetectContentType(buf[:n])

	// reset so later reads start from byte 0
	if seeker, ok := file.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek reset: %w", err)
		}
	}
	return mime, nil
}

var allowedImageMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var imageKeyIndex = regexp.MustCompile(`^images\[(\d+)\]$`)

// sortImageKeys orders multipart file keys deterministically: the bare
// "images" key first, then images[0], images[1], ... by index, then any other
// images-prefixed key lexicographically. Map iteration over MultipartForm.File
// is randomized, so without this the image slots would land in arbitrary
// positions of image_urls.
func sortImageKeys(keys []string) {
	slot := func(key string) int {
		if key == "images" {
			return -1
		}
		if m := imageKeyIndex.FindStringSubmatch(key); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
		return 1 << 30
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := slot(keys[i]), slot(keys[j])
		if si != sj {
			return si < sj
		}
		return keys[i] < keys[j]
	})
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Flat product list. With both page and limit present the response is paginated and supports search; otherwise the full enriched dump is returned.
//	@Tags			products
//	@Produce		json
//	@Param			page			query	int		false	"page number (>=1)"
//	@Param			limit			query	int		false	"page size (>=1)"
//	@Param			search			query	string	false	"case-insensitive substring over name/title/description"
//	@Param			category_id		query	string	false	"exact category filter"
//	@Param			subcategory_id	query	string	false	"exact subcategory filter"
//	@Param			main_category	query	string	false	"main category filter (full dump only)"
//	@Success		200	{object}	map[string]any
//	@Failure		400	{object}	map[string]any
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	pg, paginated, err := params.ParsePagination(q)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filter := store.ProductFilter{
		CategoryID:    q.Get("category_id"),
		SubcategoryID: q.Get("subcategory_id"),
	}

	if mainCategory := q.Get("main_category"); mainCategory != "" && !paginated {
		categories, err := app.store.Categories.List(ctx)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		ids := []string{}
		for _, c := range categories {
			if c.MainCategory == mainCategory {
				ids = append(ids, c.CategoryID)
			}
		}
		// No category carries this main_category: force an empty result
		// instead of silently dropping the filter.
		if len(ids) == 0 {
			ids = []string{""}
		}
		filter.CategoryIDs = ids
	}

	products, err := app.store.Products.List(ctx, filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

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

	if !paginated {
		catalog.SortByProductID(products)
		enriched := catalog.Enrich(products, categories, subcategories)
		app.jsonResponseWithCount(w, http.StatusOK, enriched, len(enriched))
		return
	}

	products = catalog.FilterBySearch(products, q.Get("search"))
	catalog.SortByProductID(products)
	enriched := catalog.Enrich(products, categories, subcategories)
	page := catalog.Paginate(enriched, pg.Page, pg.Limit)

	resp := struct {
		Success    bool                      `json:"success"`
		Data       []catalog.EnrichedProduct `json:"data"`
		Pagination catalog.PageMeta          `json:"pagination"`
	}{
		Success:    true,
		Data:       page.Products,
		Pagination: page.Meta,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary	Get a product by product_id
//	@Tags		products
//	@Produce	json
//	@Param		productID	path		string	true	"product id"
//	@Success	200			{object}	map[string]any
//	@Failure	404			{object}	map[string]any
//	@Router		/products/{productID} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productID")

	product, err := app.store.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	enriched := catalog.EnrichedProduct{
		Product:         *product,
		CategoryName:    "Unknown",
		SubcategoryName: "Unknown",
	}
	if category, err := app.store.Categories.GetByID(ctx, product.CategoryID); err == nil {
		enriched.CategoryName = category.CategoryName
	}
	if subcategory, err := app.store.Subcategories.GetByID(ctx, product.SubcategoryID); err == nil {
		enriched.SubcategoryName = subcategory.SubcategoryName
	}

	app.jsonResponse(w, http.StatusOK, enriched)
}

type createProductForm struct {
	ProductName        string   `validate:"required"`
	ProductTitle       string   `validate:"required"`
	ProductDescription string   `validate:"required"`
	CategoryID         string   `validate:"required"`
	SubcategoryID      string   `validate:"required"`
	Status             string   `validate:"required,oneof=active inactive"`
	ProductPrice       *float64 `validate:"omitempty,gte=0"`
}

// createProductHandler godoc
//
//	@Summary	Create a product
//	@Description	Multipart form: scalar fields plus at least one images file. Images are uploaded to the asset host before the document is written.
//	@Tags		products
//	@Accept		multipart/form-data
//	@Produce	json
//	@Success	201	{object}	map[string]any
//	@Failure	400	{object}	map[string]any
//	@Router		/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	const maxBytes = 15 * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	form := createProductForm{
		ProductName:        strings.TrimSpace(r.FormValue("product_name")),
		ProductTitle:       strings.TrimSpace(r.FormValue("product_title")),
		ProductDescription: strings.TrimSpace(r.FormValue("product_description")),
		CategoryID:         strings.TrimSpace(r.FormValue("category_id")),
		SubcategoryID:      strings.TrimSpace(r.FormValue("subcategory_id")),
		Status:             strings.TrimSpace(r.FormValue("status")),
	}
	if form.Status == "" {
		form.Status = "active"
	}
	if priceStr := strings.TrimSpace(r.FormValue("product_price")); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid product_price: %q", priceStr))
			return
		}
		form.ProductPrice = &price
	}

	if err := Validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("missing required fields: %w", err))
		return
	}

	// Form keys are images, images[0], images[1]... depending on the client.
	// The key order decides which file becomes _img1, _img2, ... and the
	// order of image_urls, so it must not come from map iteration.
	var imageKeys []string
	for key := range r.MultipartForm.File {
		if strings.HasPrefix(key, "images") {
			imageKeys = append(imageKeys, key)
		}
	}
	sortImageKeys(imageKeys)
	var fileHeaders []*multipart.FileHeader
	for _, key := range imageKeys {
		fileHeaders = append(fileHeaders, r.MultipartForm.File[key]...)
	}
	if len(fileHeaders) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("at least one image is required"))
		return
	}

	// The category/subcategory pair must resolve; it also supplies the
	// display names that the asset folder path is built from.
	category, err := app.store.Categories.GetByID(ctx, form.CategoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.badRequestResponse(w, r, fmt.Errorf("category %q does not exist", form.CategoryID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	subcategory, err := app.store.Subcategories.GetByID(ctx, form.SubcategoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.badRequestResponse(w, r, fmt.Errorf("subcategory %q does not exist", form.SubcategoryID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	if subcategory.CategoryID != category.CategoryID {
		app.badRequestResponse(w, r, fmt.Errorf("subcategory %q does not belong to category %q", form.SubcategoryID, form.CategoryID))
		return
	}

	files := make([]io.Reader, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("open file: %w", err))
			return
		}
		defer file.Close()

		mime, err := sniffMIME(file)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("sniff mime: %w", err))
			return
		}
		if !allowedImageMIME[mime] {
			app.badRequestResponse(w, r, fmt.Errorf("invalid image type: %s", mime))
			return
		}
		files = append(files, file)
	}

	productID, err := app.store.Products.NextID(ctx)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("generate product id: %w", err))
		return
	}

	imageURLs, err := app.images.UploadMany(ctx, files, productID, category.CategoryName, subcategory.SubcategoryName)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("upload images: %w", err))
		return
	}

	product := &store.Product{
		ProductID:          productID,
		ProductName:        form.ProductName,
		ProductTitle:       form.ProductTitle,
		ProductDescription: form.ProductDescription,
		ImageURLs:          imageURLs,
		CategoryID:         form.CategoryID,
		SubcategoryID:      form.SubcategoryID,
		Status:             form.Status,
		ProductPrice:       form.ProductPrice,
	}

	if err := app.store.Products.Create(ctx, product); err != nil {
		// cleanup the uploads the document write stranded
		for _, url := range imageURLs {
			if assetID := uploader.ExtractAssetIDFromURL(url); assetID != "" {
				if derr := app.images.Delete(ctx, assetID); derr != nil {
					app.logger.Warnw("failed to clean up asset after create failure", "asset_id", assetID, "error", derr)
				}
			}
		}
		app.internalServerError(w, r, fmt.Errorf("create product: %w", err))
		return
	}

	app.jsonResponseWithMessage(w, http.StatusCreated, product, "Product created successfully")
}

type updateProductPayload struct {
	ProductName        string   `json:"product_name" validate:"required"`
	ProductTitle       string   `json:"product_title" validate:"required"`
	ProductDescription string   `json:"product_description" validate:"required"`
	CategoryID         string   `json:"category_id" validate:"required"`
	SubcategoryID      string   `json:"subcategory_id" validate:"required"`
	Status             string   `json:"status" validate:"required,oneof=active inactive"`
	ProductPrice       *float64 `json:"product_price" validate:"omitempty,gte=0"`
	ImageURLs          []string `json:"image_urls" validate:"required,min=1"`
}

// updateProductHandler godoc
//
//	@Summary	Update a product in full
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		productID	path		string	true	"product id"
//	@Success	200			{object}	map[string]any
//	@Failure	400			{object}	map[string]any
//	@Failure	404			{object}	map[string]any
//	@Router		/products/{productID} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productID")

	var payload updateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := map[string]interface{}{
		"product_name":        payload.ProductName,
		"product_title":       payload.ProductTitle,
		"product_description": payload.ProductDescription,
		"category_id":         payload.CategoryID,
		"subcategory_id":      payload.SubcategoryID,
		"status":              payload.Status,
		"image_urls":          payload.ImageURLs,
	}
	if payload.ProductPrice != nil {
		updates["product_price"] = *payload.ProductPrice
	}

	if err := app.store.Products.Update(ctx, productID, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponseWithMessage(w, http.StatusOK, nil, "Product updated successfully")
}

// deleteProductHandler godoc
//
//	@Summary	Delete a product and its images
//	@Description	The document is removed first; asset deletes are best-effort and every one is attempted even when some fail.
//	@Tags		products
//	@Produce	json
//	@Param		productID	path		string	true	"product id"
//	@Success	200			{object}	map[string]any
//	@Failure	404			{object}	map[string]any
//	@Router		/products/{productID} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productID")

	product, err := app.store.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Products.Delete(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	// Best-effort asset cleanup: a failed delete is logged and the rest are
	// still attempted. Orphaned assets are accepted over a failed response.
	for _, url := range product.ImageURLs {
		assetID := uploader.ExtractAssetIDFromURL(url)
		if assetID == "" {
			app.logger.Warnw("unrecognized image url on deleted product", "product_id", productID, "url", url)
			continue
		}
		if err := app.images.Delete(ctx, assetID); err != nil {
			app.logger.Warnw("failed to delete asset", "product_id", productID, "asset_id", assetID, "error", err)
		}
	}

	app.jsonResponseWithMessage(w, http.StatusOK, nil, "Product deleted successfully")
}
