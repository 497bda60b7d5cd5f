package store

import "time"

// Documents are keyed by business identifiers (category_id, subcategory_id,
// product_id) chosen by the admin tooling, never by Mongo's _id.

type Category struct {
	CategoryID   string `json:"category_id" bson:"category_id"`
	CategoryName string `json:"category_name" bson:"category_name"`
	MainCategory string `json:"main_category,omitempty" bson:"main_category,omitempty"`
}

type Subcategory struct {
	SubcategoryID   string `json:"subcategory_id" bson:"subcategory_id"`
	SubcategoryName string `json:"subcategory_name" bson:"subcategory_name"`
	CategoryID      string `json:"category_id" bson:"category_id"`
}

type Product struct {
	ProductID          string    `json:"product_id" bson:"product_id"`
	ProductName        string    `json:"product_name" bson:"product_name"`
	ProductTitle       string    `json:"product_title" bson:"product_title"`
	ProductDescription string    `json:"product_description" bson:"product_description"`
	ImageURLs          []string  `json:"image_urls" bson:"image_urls"`
	CategoryID         string    `json:"category_id" bson:"category_id"`
	SubcategoryID      string    `json:"subcategory_id" bson:"subcategory_id"`
	Status             string    `json:"status" bson:"status"`
	ProductPrice       *float64  `json:"product_price,omitempty" bson:"product_price,omitempty"`
	// Pointers so documents without timestamps (seeded fixtures) omit the
	// fields instead of serializing the zero time.
	CreatedAt *time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
