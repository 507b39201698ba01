package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category name is globally unique, enforced by a unique index on the
// collection rather than by validation.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Description string             `bson:"description" json:"description" validate:"required,min=10"`
	CreatedOn   time.Time          `bson:"createdOn" json:"createdOn"`
	UpdatedOn   time.Time          `bson:"updatedOn" json:"updatedOn"`
}
