package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Meal struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"image_url" bson:"image_url" validate:"required"`

	// Nutrition per day pack
	Protein  float64 `json:"protein" bson:"protein" validate:"min=0"`
	Calories float64 `json:"calories" bson:"calories" validate:"min=0"`

	// Price per day pack, whole rupees
	Price int64 `json:"price" bson:"price" validate:"min=0"`

	IsFeatured    bool `json:"is_featured" bson:"is_featured"`
	FeaturedOrder int  `json:"featured_order" bson:"featured_order"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
