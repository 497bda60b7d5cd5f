package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubcategoriesStore struct {
	coll *mongo.Collection
}

func (s *SubcategoriesStore) List(ctx context.Context) ([]Subcategory, error) {
	return s.find(ctx, bson.M{})
}

func (s *SubcategoriesStore) ListByCategory(ctx context.Context, categoryID string) ([]Subcategory, error) {
	return s.find(ctx, bson.M{"category_id": categoryID})
}

func (s *SubcategoriesStore) find(ctx context.Context, filter bson.M) ([]Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find subcategories: %w", err)
	}
	defer cursor.Close(ctx)

	subcategories := []Subcategory{}
	if err := cursor.All(ctx, &subcategories); err != nil {
		return nil, fmt.Errorf("decode subcategories: %w", err)
	}
	return subcategories, nil
}

func (s *SubcategoriesStore) GetByID(ctx context.Context, subcategoryID string) (*Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var subcategory Subcategory
	err := s.coll.FindOne(ctx, bson.M{"subcategory_id": subcategoryID}).Decode(&subcategory)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &subcategory, nil
}
