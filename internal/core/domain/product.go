package domain

import "time"

// Product is a paint listing offered by a supplier.
type Product struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Name       string    `json:"name" bson:"name"`
	Brand      string    `json:"brand" bson:"brand"`
	ColorHex   string    `json:"color_hex" bson:"color_hex"`
	Finish     string    `json:"finish" bson:"finish"`
	SizeLiters float64   `json:"size_liters" bson:"size_liters"`
	Price      float64   `json:"price" bson:"price"`
	SupplierID string    `json:"supplier_id" bson:"supplier_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Brand      string
	ColorHex   string
	Finish     string
	MaxPrice   float64
	SupplierID string
	Limit      int64
	Offset     int64
}
