package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a catalog entry. Category is an advisory reference: the id is
// stored as-is and never checked against the categories collection.
type Item struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name" validate:"required"`
	Description string              `bson:"description" json:"description" validate:"required,min=10"`
	Price       *float64            `bson:"price" json:"price" validate:"required,gte=0"`
	Brand       string              `bson:"brand" json:"brand" validate:"required"`
	Category    *primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	CreatedOn   time.Time           `bson:"createdOn" json:"createdOn"`
	UpdatedOn   time.Time           `bson:"updatedOn" json:"updatedOn"`
}
