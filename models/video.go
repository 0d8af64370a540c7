package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is a promotional video. URL points at an uploaded file, Embed holds raw
// embeddable markup; URL wins when both are set.
type Video struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	URL       string             `bson:"url" json:"url"`
	Embed     string             `bson:"embed" json:"embed"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
