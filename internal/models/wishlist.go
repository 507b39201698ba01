package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishList belongs to an external user identified only by an opaque string.
// Items keeps insertion order and may contain duplicates or ids of items
// that no longer exist.
type WishList struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    string               `bson:"userId" json:"userId" validate:"required"`
	Items     []primitive.ObjectID `bson:"items" json:"items"`
	CreatedOn time.Time            `bson:"createdOn" json:"createdOn"`
	UpdatedOn time.Time            `bson:"updatedOn" json:"updatedOn"`
}
