package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ExchangeRefunded = "REFUNDED"

// ExchangeItem snapshots one side of a swap: the line item being returned
// or the item being taken instead.
type ExchangeItem struct {
	Name      string  `bson:"name" json:"name"`
	Category  string  `bson:"category" json:"category"`
	Quantity  float64 `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
	Total     float64 `bson:"total" json:"total"`
}

// Exchange swaps a sold line item for another one. PriceDelta is
// new.Total - original.Total: positive means the member owes more, negative
// means the member is owed a refund. The delta is settled by a separate
// operation which fills the Settle* fields exactly once.
type Exchange struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SaleID        primitive.ObjectID `bson:"saleid" json:"saleid"`
	MemberCode    string             `bson:"membercode" json:"membercode"`
	MemberName    string             `bson:"membername" json:"membername"`
	Original      ExchangeItem       `bson:"original" json:"original"`
	NewItem       ExchangeItem       `bson:"newitem" json:"newitem"`
	PriceDelta    float64            `bson:"pricedelta" json:"pricedelta"`
	Motive        string             `bson:"motive,omitempty" json:"motive,omitempty"`
	By            Actor              `bson:"by" json:"by"`
	PaymentStatus string             `bson:"paymentstatus" json:"paymentstatus"`
	SettleMethod  string             `bson:"settlemethod,omitempty" json:"settlemethod,omitempty"`
	SettleNotes   string             `bson:"settlenotes,omitempty" json:"settlenotes,omitempty"`
	SettledBy     Actor              `bson:"settledby,omitempty" json:"settledby,omitempty"`
	SettledAt     *time.Time         `bson:"settledat,omitempty" json:"settledat,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

type ExchangeItemInput struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

type ExchangeInput struct {
	SaleID   string            `json:"saleid" binding:"required"`
	Original ExchangeItemInput `json:"original" binding:"required"`
	NewItem  ExchangeItemInput `json:"newitem" binding:"required"`
	Motive   string            `json:"motive"`
	WorkerID string            `json:"workerid"`
}

type SettleInput struct {
	Method   string `json:"method"`
	Notes    string `json:"notes"`
	WorkerID string `json:"workerid"`
}
