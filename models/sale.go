package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending       = "PENDING"
	StatusPartiallyPaid = "PARTIALLY_PAID"
	StatusPaid          = "PAID"
)

const (
	MethodCash     = "CASH"
	MethodCard     = "CARD"
	MethodTransfer = "TRANSFER"
)

// SaleItem is a snapshot taken at sale time. Category is copied from the
// product so later catalog edits do not rewrite history.
type SaleItem struct {
	Name      string  `bson:"name" json:"name"`
	Category  string  `bson:"category" json:"category"`
	Quantity  float64 `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
	Total     float64 `bson:"total" json:"total"`
}

// PaymentEntry is one money-received event against a sale. The list on the
// sale is append-only.
type PaymentEntry struct {
	Date   time.Time `bson:"date" json:"date"`
	Amount float64   `bson:"amount" json:"amount"`
	Method string    `bson:"method" json:"method"`
	Notes  string    `bson:"notes,omitempty" json:"notes,omitempty"`
	By     Actor     `bson:"by" json:"by"`
}

type Sale struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MemberCode string             `bson:"membercode" json:"membercode"`
	MemberName string             `bson:"membername" json:"membername"`
	IsMember   bool               `bson:"ismember" json:"ismember"`
	Items      []SaleItem         `bson:"items" json:"items"`
	Total      float64            `bson:"total" json:"total"`
	Paid       float64            `bson:"paid" json:"paid"`
	Status     string             `bson:"status" json:"status"`
	Method     string             `bson:"method" json:"method"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	// WorkerID/WorkerName record the delegated worker who made the sale.
	// Later payments never overwrite them once set.
	WorkerID      string         `bson:"workerid,omitempty" json:"workerid,omitempty"`
	WorkerName    string         `bson:"workername,omitempty" json:"workername,omitempty"`
	CreatedByID   string         `bson:"createdbyid" json:"createdbyid"`
	CreatedByName string         `bson:"createdbyname" json:"createdbyname"`
	Payments      []PaymentEntry `bson:"payments" json:"payments"`
	ViewToken     string         `bson:"view_token" json:"view_token"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

type SaleItemInput struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

type SaleInput struct {
	MemberCode string          `json:"membercode"`
	MemberName string          `json:"membername"`
	IsMember   bool            `json:"ismember"`
	Items      []SaleItemInput `json:"items" binding:"required"`
	Total      float64         `json:"total"`
	Paid       float64         `json:"paid"`
	Method     string          `json:"method"`
	Notes      string          `json:"notes"`
	WorkerID   string          `json:"workerid"`
}

type PaymentInput struct {
	Amount   float64 `json:"amount" binding:"required"`
	Method   string  `json:"method"`
	Notes    string  `json:"notes"`
	WorkerID string  `json:"workerid"`
}
