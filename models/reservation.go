package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation documents are owned by the facility subsystem; this service
// only reads them for the collections report.
type Reservation struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	MemberCode    string               `bson:"membercode" json:"membercode"`
	MemberName    string               `bson:"membername" json:"membername"`
	Facility      string               `bson:"facility" json:"facility"`
	Price         float64              `bson:"price" json:"price"`
	AmountPaid    float64              `bson:"amountpaid" json:"amountpaid"`
	Payments      []ReservationPayment `bson:"payments,omitempty" json:"payments,omitempty"`
	Status        string               `bson:"status" json:"status"`
	WorkerID      string               `bson:"workerid,omitempty" json:"workerid,omitempty"`
	WorkerName    string               `bson:"workername,omitempty" json:"workername,omitempty"`
	CreatedByID   string               `bson:"createdbyid,omitempty" json:"createdbyid,omitempty"`
	CreatedByName string               `bson:"createdbyname,omitempty" json:"createdbyname,omitempty"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
}

type ReservationPayment struct {
	Date   time.Time `bson:"date" json:"date"`
	Amount float64   `bson:"amount" json:"amount"`
	Method string    `bson:"method" json:"method"`
	By     Actor     `bson:"by" json:"by"`
}
