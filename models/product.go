package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a stock counter. NameKey is the lowercased name and is the
// canonical lookup key, so product identity is case-insensitive.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	NameKey       string             `bson:"namekey" json:"-"`
	Category      string             `bson:"category" json:"category"`
	Quantity      float64            `bson:"quantity" json:"quantity"`
	PurchasePrice float64            `bson:"purchaseprice" json:"purchaseprice"`
	SellingPrice  float64            `bson:"sellingprice" json:"sellingprice"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
