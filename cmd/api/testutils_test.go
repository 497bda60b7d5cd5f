package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prosmart/internal/ratelimiter"
	"prosmart/internal/store"

	"go.uber.org/zap"
)

type fakeProductsStore struct {
	products    []store.Product
	listCalled  int
	lastFilter  store.ProductFilter
	tripleCalls [][3]string
	deleted     []string
	created     []*store.Product
	updated     map[string]map[string]interface{}
	nextID      string
}

func (f *fakeProductsStore) List(ctx context.Context, filter store.ProductFilter) ([]store.Product, error) {
	f.listCalled++
	f.lastFilter = filter

	matched := []store.Product{}
	for _, p := range f.products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.SubcategoryID != "" && p.SubcategoryID != filter.SubcategoryID {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func (f *fakeProductsStore) GetByID(ctx context.Context, productID string) (*store.Product, error) {
	for i := range f.products {
		if f.products[i].ProductID == productID {
			return &f.products[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductsStore) GetByTriple(ctx context.Context, categoryID, subcategoryID, productID string) (*store.Product, error) {
	f.tripleCalls = append(f.tripleCalls, [3]string{categoryID, subcategoryID, productID})
	for i := range f.products {
		p := f.products[i]
		if p.CategoryID == categoryID && p.SubcategoryID == subcategoryID && p.ProductID == productID {
			return &f.products[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductsStore) Create(ctx context.Context, product *store.Product) error {
	f.created = append(f.created, product)
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeProductsStore) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	if _, err := f.GetByID(ctx, productID); err != nil {
		return err
	}
	if f.updated == nil {
		f.updated = map[string]map[string]interface{}{}
	}
	f.updated[productID] = updates
	return nil
}

func (f *fakeProductsStore) Delete(ctx context.Context, productID string) error {
	for i := range f.products {
		if f.products[i].ProductID == productID {
			f.products = append(f.products[:i], f.products[i+1:]...)
			f.deleted = append(f.deleted, productID)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeProductsStore) NextID(ctx context.Context) (string, error) {
	if f.nextID == "" {
		return "prod-0001", nil
	}
	return f.nextID, nil
}

type fakeCategoriesStore struct {
	categories []store.Category
}

func (f *fakeCategoriesStore) List(ctx context.Context) ([]store.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoriesStore) GetByID(ctx context.Context, categoryID string) (*store.Category, error) {
	for i := range f.categories {
		if f.categories[i].CategoryID == categoryID {
			return &f.categories[i], nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeSubcategoriesStore struct {
	subcategories []store.Subcategory
}

func (f *fakeSubcategoriesStore) List(ctx context.Context) ([]store.Subcategory, error) {
	return f.subcategories, nil
}

func (f *fakeSubcategoriesStore) ListByCategory(ctx context.Context, categoryID string) ([]store.Subcategory, error) {
	matched := []store.Subcategory{}
	for _, s := range f.subcategories {
		if s.CategoryID == categoryID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeSubcategoriesStore) GetByID(ctx context.Context, subcategoryID string) (*store.Subcategory, error) {
	for i := range f.subcategories {
		if f.subcategories[i].SubcategoryID == subcategoryID {
			return &f.subcategories[i], nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeUploader struct {
	uploads  []string
	contents []string // uploaded file bodies, in slot order
	deletes  []string
	failOn   string // asset id whose delete fails
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, productID, categoryName, subcategoryName string, index int) (string, error) {
	if file != nil {
		body, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		f.contents = append(f.contents, string(body))
	}
	url := fmt.Sprintf("https://res.cloudinary.com/test/image/upload/v1/%s/%s/%s/%s_img%d.jpg",
		categoryName, subcategoryName, productID, productID, index)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeUploader) UploadMany(ctx context.Context, files []io.Reader, productID, categoryName, subcategoryName string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i := range files {
		url, err := f.Upload(ctx, files[i], productID, categoryName, subcategoryName, i+1)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (f *fakeUploader) Delete(ctx context.Context, assetID string) error {
	f.deletes = append(f.deletes, assetID)
	if assetID == f.failOn {
		return fmt.Errorf("destroy %s: simulated upstream failure", assetID)
	}
	return nil
}

func newTestApplication(t *testing.T, storage store.Storage, images *fakeUploader) *application {
	t.Helper()
	return &application{
		config: config{
			addr: ":0",
			env:  "test",
			rateLimiter: ratelimiter.Config{
				Enabled: false,
			},
		},
		logger: zap.NewNop().Sugar(),
		store:  storage,
		images: images,
	}
}

func doRequest(t *testing.T, app *application, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}
