package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prosmart/internal/store"
)

func seededStorage(n int) (store.Storage, *fakeProductsStore, *fakeUploader) {
	products := &fakeProductsStore{}
	for i := 1; i <= n; i++ {
		products.products = append(products.products, store.Product{
			ProductID:     fmt.Sprintf("prod-%04d", i),
			ProductName:   fmt.Sprintf("Product %d", i),
			CategoryID:    "cat-0001",
			SubcategoryID: "subcat-0001",
			Status:        "active",
		})
	}
	storage := store.Storage{
		Products: products,
		Categories: &fakeCategoriesStore{categories: []store.Category{
			{CategoryID: "cat-0001", CategoryName: "Medical Equipment"},
		}},
		Subcategories: &fakeSubcategoriesStore{subcategories: []store.Subcategory{
			{SubcategoryID: "subcat-0001", SubcategoryName: "Massagers", CategoryID: "cat-0001"},
		}},
	}
	return storage, products, &fakeUploader{}
}

type paginatedResponse struct {
	Success    bool              `json:"success"`
	Data       []json.RawMessage `json:"data"`
	Pagination struct {
		Total      int `json:"total"`
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

func TestListProductsPagination(t *testing.T) {
	storage, _, images := seededStorage(25)
	app := newTestApplication(t, storage, images)

	tests := []struct {
		page      int
		wantCount int
	}{
		{page: 1, wantCount: 10},
		{page: 2, wantCount: 10},
		{page: 3, wantCount: 5},
		{page: 4, wantCount: 0},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/products?page=%d&limit=10", tt.page), nil)
		rr := doRequest(t, app, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("page %d: status %d, want 200", tt.page, rr.Code)
		}

		var resp paginatedResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("page %d: decode: %v", tt.page, err)
		}
		if !resp.Success {
			t.Fatalf("page %d: success=false", tt.page)
		}
		if len(resp.Data) != tt.wantCount {
			t.Errorf("page %d: got %d products, want %d", tt.page, len(resp.Data), tt.wantCount)
		}
		if resp.Pagination.Total != 25 || resp.Pagination.TotalPages != 3 {
			t.Errorf("page %d: pagination %+v, want total=25 totalPages=3", tt.page, resp.Pagination)
		}
	}
}

func TestListProductsRejectsZeroLimit(t *testing.T) {
	storage, _, images := seededStorage(3)
	app := newTestApplication(t, storage, images)

	for _, target := range []string{
		"/v1/products?page=1&limit=0",
		"/v1/products?page=x&limit=10",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := doRequest(t, app, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, rr.Code)
		}
	}
}

func TestListProductsSearchIsCaseInsensitive(t *testing.T) {
	storage, products, images := seededStorage(0)
	products.products = []store.Product{
		{ProductID: "prod-0001", ProductName: "Neck Massager", CategoryID: "cat-0001", SubcategoryID: "subcat-0001"},
		{ProductID: "prod-0002", ProductName: "BP Monitor", CategoryID: "cat-0001", SubcategoryID: "subcat-0001"},
	}
	app := newTestApplication(t, storage, images)

	for _, term := range []string{"massager", "MASSAGE"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/products?page=1&limit=10&search="+term, nil)
		rr := doRequest(t, app, req)

		var resp paginatedResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Pagination.Total != 1 || len(resp.Data) != 1 {
			t.Errorf("search %q: got %d results (total %d), want 1", term, len(resp.Data), resp.Pagination.Total)
		}
	}
}

func TestListProductsFullDumpKeepsUnknowns(t *testing.T) {
	storage, products, images := seededStorage(0)
	products.products = []store.Product{
		{ProductID: "prod-0001", ProductName: "Neck Massager", CategoryID: "cat-0001", SubcategoryID: "subcat-0001"},
		{ProductID: "prod-0002", ProductName: "Orphan", CategoryID: "cat-0404", SubcategoryID: "subcat-0404"},
	}
	app := newTestApplication(t, storage, images)

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	rr := doRequest(t, app, req)

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    []struct {
			ProductID       string `json:"product_id"`
			CategoryName    string `json:"category_name"`
			SubcategoryName string `json:"subcategory_name"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("flat dump must keep unresolvable products: count=%d", resp.Count)
	}
	if resp.Data[1].ProductID != "prod-0002" || resp.Data[1].CategoryName != "Unknown" || resp.Data[1].SubcategoryName != "Unknown" {
		t.Errorf(`orphaned product should carry "Unknown" names, got %+v`, resp.Data[1])
	}
}

func TestGetProductNotFound(t *testing.T) {
	storage, _, images := seededStorage(1)
	app := newTestApplication(t, storage, images)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/prod-9999", nil)
	rr := doRequest(t, app, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("error envelope malformed: %+v", resp)
	}
}

func TestCreateProductValidation(t *testing.T) {
	storage, _, images := seededStorage(0)
	app := newTestApplication(t, storage, images)

	// All scalar fields present but no images at all.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, val := range map[string]string{
		"product_name":        "Neck Massager",
		"product_title":       "Shiatsu Neck Massager",
		"product_description": "Relieves tension",
		"category_id":         "cat-0001",
		"subcategory_id":      "subcat-0001",
	} {
		mw.WriteField(key, val)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := doRequest(t, app, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("create with no images: status %d, want 400", rr.Code)
	}

	// Missing required scalar field.
	body.Reset()
	mw = multipart.NewWriter(&body)
	mw.WriteField("product_name", "Neck Massager")
	mw.Close()

	req = httptest.NewRequest(http.MethodPost, "/v1/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr = doRequest(t, app, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("create with missing fields: status %d, want 400", rr.Code)
	}
}

func TestSortImageKeys(t *testing.T) {
	keys := []string{"images[10]", "images[2]", "images", "images[0]", "images[1]"}
	sortImageKeys(keys)
	want := []string{"images", "images[0]", "images[1]", "images[2]", "images[10]"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sorted keys = %v, want %v", keys, want)
		}
	}
}

func TestCreateProductPreservesImageSlotOrder(t *testing.T) {
	// MultipartForm.File is a map, so the form keys must be ordered
	// explicitly before upload; several rounds to shake out any dependence
	// on map iteration order.
	const pngHeader = "\x89PNG\r\n\x1a\n"
	// Parts deliberately written out of slot order.
	wireOrder := []int{2, 0, 4, 1, 3}

	for round := 0; round < 10; round++ {
		storage, products, images := seededStorage(0)
		app := newTestApplication(t, storage, images)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		for key, val := range map[string]string{
			"product_name":        "Neck Massager",
			"product_title":       "Shiatsu Neck Massager",
			"product_description": "Relieves tension",
			"category_id":         "cat-0001",
			"subcategory_id":      "subcat-0001",
		} {
			mw.WriteField(key, val)
		}
		for _, slot := range wireOrder {
			fw, err := mw.CreateFormFile(fmt.Sprintf("images[%d]", slot), fmt.Sprintf("img%d.png", slot))
			if err != nil {
				t.Fatalf("create form file: %v", err)
			}
			fmt.Fprintf(fw, "%sslot-%d", pngHeader, slot)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/v1/products", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := doRequest(t, app, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("round %d: status %d, want 201: %s", round, rr.Code, rr.Body.String())
		}
		for k, got := range images.contents {
			want := fmt.Sprintf("%sslot-%d", pngHeader, k)
			if got != want {
				t.Fatalf("round %d: slot %d uploaded out of order: got %q", round, k, got)
			}
		}
		created := products.created[0]
		for k, url := range created.ImageURLs {
			want := fmt.Sprintf("_img%d.jpg", k+1)
			if !strings.HasSuffix(url, want) {
				t.Fatalf("round %d: image_urls[%d] = %q, want suffix %q", round, k, url, want)
			}
		}
	}
}

func TestListProductsLoneLimitIsFullDump(t *testing.T) {
	storage, _, images := seededStorage(25)
	app := newTestApplication(t, storage, images)

	req := httptest.NewRequest(http.MethodGet, "/v1/products?limit=5", nil)
	rr := doRequest(t, app, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rr.Code)
	}
	var resp struct {
		Success bool              `json:"success"`
		Count   int               `json:"count"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 25 || len(resp.Data) != 25 {
		t.Errorf("a lone limit param must not paginate: count=%d len=%d", resp.Count, len(resp.Data))
	}
}

func TestGetProductOmitsUnsetTimestamps(t *testing.T) {
	storage, _, images := seededStorage(1)
	app := newTestApplication(t, storage, images)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/prod-0001", nil)
	rr := doRequest(t, app, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rr.Code)
	}
	var resp struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"created_at", "updated_at"} {
		if _, ok := resp.Data[field]; ok {
			t.Errorf("unset %s should be omitted, got %s", field, resp.Data[field])
		}
	}
}

func TestUpdateProduct(t *testing.T) {
	storage, products, images := seededStorage(1)
	app := newTestApplication(t, storage, images)

	payload := `{
		"product_name": "Neck Massager v2",
		"product_title": "Shiatsu Neck Massager",
		"product_description": "Now with heat",
		"category_id": "cat-0001",
		"subcategory_id": "subcat-0001",
		"status": "active",
		"image_urls": ["https://res.cloudinary.com/test/image/upload/v1/a/b/prod-0001/prod-0001_img1.jpg"]
	}`
	req := httptest.NewRequest(http.MethodPut, "/v1/products/prod-0001", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := doRequest(t, app, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if products.updated["prod-0001"]["product_name"] != "Neck Massager v2" {
		t.Errorf("update not applied: %+v", products.updated)
	}

	// Unknown product is a 404, not a silent no-op.
	req = httptest.NewRequest(http.MethodPut, "/v1/products/prod-9999", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr = doRequest(t, app, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}

	// Bad status enum.
	bad := strings.Replace(payload, `"active"`, `"archived"`, 1)
	req = httptest.NewRequest(http.MethodPut, "/v1/products/prod-0001", strings.NewReader(bad))
	req.Header.Set("Content-Type", "application/json")
	rr = doRequest(t, app, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 for invalid status", rr.Code)
	}
}

func TestDeleteProductAttemptsEveryAssetDelete(t *testing.T) {
	storage, products, images := seededStorage(0)
	products.products = []store.Product{{
		ProductID:     "prod-0001",
		ProductName:   "Neck Massager",
		CategoryID:    "cat-0001",
		SubcategoryID: "subcat-0001",
		ImageURLs: []string{
			"https://res.cloudinary.com/test/image/upload/v1/a/b/prod-0001/prod-0001_img1.jpg",
			"https://res.cloudinary.com/test/image/upload/v1/a/b/prod-0001/prod-0001_img2.jpg",
			"https://res.cloudinary.com/test/image/upload/v1/a/b/prod-0001/prod-0001_img3.jpg",
		},
	}}
	// The second asset delete fails; the third must still be attempted.
	images.failOn = "a/b/prod-0001/prod-0001_img2"
	app := newTestApplication(t, storage, images)

	req := httptest.NewRequest(http.MethodDelete, "/v1/products/prod-0001", nil)
	rr := doRequest(t, app, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 (asset cleanup is best-effort)", rr.Code)
	}
	if len(images.deletes) != 3 {
		t.Fatalf("issued %d asset deletes, want 3: %v", len(images.deletes), images.deletes)
	}
	if len(products.deleted) != 1 || products.deleted[0] != "prod-0001" {
		t.Errorf("product document not deleted: %v", products.deleted)
	}
}
