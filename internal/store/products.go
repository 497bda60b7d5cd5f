package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductsStore struct {
	coll *mongo.Collection
}

// ProductFilter narrows a product listing by exact matches. CategoryIDs is
// used when a main_category filter has already been resolved to the set of
// category ids it covers; it takes precedence over CategoryID.
type ProductFilter struct {
	CategoryID    string
	SubcategoryID string
	CategoryIDs   []string
}

func (f ProductFilter) query() bson.M {
	q := bson.M{}
	if len(f.CategoryIDs) > 0 {
		q["category_id"] = bson.M{"$in": f.CategoryIDs}
	} else if f.CategoryID != "" {
		q["category_id"] = f.CategoryID
	}
	if f.SubcategoryID != "" {
		q["subcategory_id"] = f.SubcategoryID
	}
	return q
}

func (s *ProductsStore) List(ctx context.Context, filter ProductFilter) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter.query())
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *ProductsStore) GetByID(ctx context.Context, productID string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var product Product
	err := s.coll.FindOne(ctx, bson.M{"product_id": productID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductsStore) GetByTriple(ctx context.Context, categoryID, subcategoryID, productID string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	filter := bson.M{
		"category_id":    categoryID,
		"subcategory_id": subcategoryID,
		"product_id":     productID,
	}

	var product Product
	err := s.coll.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductsStore) Create(ctx context.Context, product *Product) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	now := time.Now().UTC()
	product.CreatedAt = &now
	product.UpdatedAt = &now

	if _, err := s.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *ProductsStore) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"product_id": productID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductsStore) Delete(ctx context.Context, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"product_id": productID})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NextID returns the next product id in sequence, e.g. prod-0008 when the
// highest existing numeric suffix is 7. Ids are human-assigned and sequential
// by convention; documents whose ids carry no numeric suffix are ignored.
func (s *ProductsStore) NextID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return "", fmt.Errorf("scan product ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ProductID string `bson:"product_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return "", fmt.Errorf("decode product ids: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ProductID)
	}
	return nextProductID(ids), nil
}

var productIDSuffix = regexp.MustCompile(`(\d+)$`)

func nextProductID(ids []string) string {
	max := 0
	for _, id := range ids {
		m := productIDSuffix.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("prod-%04d", max+1)
}
