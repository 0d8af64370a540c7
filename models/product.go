package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item created from the admin console.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Ref returns the reference stored in a cart line item.
func (p Product) Ref() ProductRef {
	return ProductRef{
		ID:    p.ID.Hex(),
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
	}
}

// ProductRef is what the storefront sends when a product is added to a cart
type ProductRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}
