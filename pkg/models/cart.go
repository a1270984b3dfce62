package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a cart line. Line identity is the (product, size, color)
// triple: adding the same triple twice increments the quantity, while a
// different size or color gets its own line.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
}

// SameLine reports whether two items share the composite line identity.
func (ci CartItem) SameLine(other CartItem) bool {
	return ci.ProductID == other.ProductID && ci.Size == other.Size && ci.Color == other.Color
}

// Cart is the server-side cart, one per user. Guest carts live entirely
// in client storage and only reach the server through the merge call.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
