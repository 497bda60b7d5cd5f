// Command seed imports a catalog export into MongoDB. The export is the
// nested JSON shape produced by the admin tooling:
//
//	{"products": {"Category Name": {"category_id": "...", "main_category": "...",
//	  "subcategories": {"Subcategory Name": {"subcategory_id": "...",
//	    "products": [{...}, ...]}}}}}
//
// Every document is upserted by its business id, so re-running the import is
// safe.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"prosmart/internal/db"
	"prosmart/internal/store"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type export struct {
	Products map[string]exportCategory `json:"products"`
}

type exportCategory struct {
	CategoryID    string                       `json:"category_id"`
	MainCategory  string                       `json:"main_category"`
	Subcategories map[string]exportSubcategory `json:"subcategories"`
}

type exportSubcategory struct {
	SubcategoryID string          `json:"subcategory_id"`
	Products      []store.Product `json:"products"`
}

func main() {
	path := flag.String("file", "catalog.json", "path to the catalog JSON export")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read export: %v", err)
	}

	var data export
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("parse export: %v", err)
	}

	client, err := db.New(os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer func() {
		if err := db.Close(client); err != nil {
			log.Printf("disconnect: %v", err)
		}
	}()

	database := client.Database(os.Getenv("MONGODB_DB"))
	categories := database.Collection("categories")
	subcategories := database.Collection("subcategories")
	products := database.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var nCategories, nSubcategories, nProducts int

	for categoryName, category := range data.Products {
		upsert(ctx, categories,
			bson.M{"category_id": category.CategoryID},
			bson.M{
				"category_id":   category.CategoryID,
				"category_name": categoryName,
				"main_category": category.MainCategory,
			})
		nCategories++

		for subcategoryName, subcategory := range category.Subcategories {
			upsert(ctx, subcategories,
				bson.M{"subcategory_id": subcategory.SubcategoryID},
				bson.M{
					"subcategory_id":   subcategory.SubcategoryID,
					"subcategory_name": subcategoryName,
					"category_id":      category.CategoryID,
				})
			nSubcategories++

			for _, product := range subcategory.Products {
				product.CategoryID = category.CategoryID
				product.SubcategoryID = subcategory.SubcategoryID
				if product.Status == "" {
					product.Status = "active"
				}
				upsert(ctx, products,
					bson.M{"product_id": product.ProductID},
					product)
				nProducts++
			}
		}
	}

	log.Printf("imported %d categories, %d subcategories, %d products", nCategories, nSubcategories, nProducts)
}

func upsert(ctx context.Context, coll *mongo.Collection, filter bson.M, doc interface{}) {
	_, err := coll.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		log.Fatalf("upsert into %s: %v", coll.Name(), err)
	}
}
