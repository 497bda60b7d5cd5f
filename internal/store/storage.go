package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Products interface {
		List(context.Context, ProductFilter) ([]Product, error)
		GetByID(context.Context, string) (*Product, error)
		GetByTriple(ctx context.Context, categoryID, subcategoryID, productID string) (*Product, error)
		Create(context.Context, *Product) error
		Update(ctx context.Context, productID string, updates map[string]interface{}) error
		Delete(context.Context, string) error
		NextID(context.Context) (string, error)
	}
	Categories interface {
		List(context.Context) ([]Category, error)
		GetByID(context.Context, string) (*Category, error)
	}
	Subcategories interface {
		List(context.Context) ([]Subcategory, error)
		ListByCategory(context.Context, string) ([]Subcategory, error)
		GetByID(context.Context, string) (*Subcategory, error)
	}
}

func NewStorage(db *mongo.Database) Storage {
	return Storage{
		Products:      &ProductsStore{db.Collection("products")},
		Categories:    &CategoriesStore{db.Collection("categories")},
		Subcategories: &SubcategoriesStore{db.Collection("subcategories")},
	}
}
