package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleModel is one year variant of a vehicle model listing.
// (Category, Model, Year) is the natural key but is not enforced.
type VehicleModel struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Category  string                 `bson:"category" json:"category"`
	Model     string                 `bson:"model" json:"model"`
	Year      string                 `bson:"year" json:"year"`
	Image     string                 `bson:"image" json:"image"`
	Specs     map[string]interface{} `bson:"specs" json:"specs"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
}

// ModelGroup is every year variant listed under one model name.
type ModelGroup struct {
	Name  string         `json:"name"`
	Years []VehicleModel `json:"years"`
}

// CategoryGroup is the models listed under one category.
type CategoryGroup struct {
	Category string       `json:"category"`
	Models   []ModelGroup `json:"models"`
}
