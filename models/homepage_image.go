package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HomepageImage is one slide of the homepage carousel
type HomepageImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL       string             `bson:"url" json:"url"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
