package models

import "time"

const (
	MovementSale        = "SALE"
	MovementReservation = "RESERVATION"
	MovementExchange    = "EXCHANGE"
)

// Movement is one row of the collections report. It is computed per query
// and never persisted.
type Movement struct {
	Source      string    `json:"source"`
	Date        time.Time `json:"date"`
	MemberCode  string    `json:"membercode"`
	MemberName  string    `json:"membername"`
	Description string    `json:"description"`
	// Amount is the display amount, always positive. Collected keeps the
	// sign: negative for exchange refunds.
	Amount    float64 `json:"amount"`
	Collected float64 `json:"collected"`
	// Cumulative is the paid-so-far after this entry. Sales rows only.
	Cumulative float64 `json:"cumulative,omitempty"`
	Method     string  `json:"method,omitempty"`
	// By is the entry-level attribution. Kind "unknown" means the actor
	// could only be inferred from the parent record; such rows are shown
	// with ActorName but never match an actor filter.
	By        Actor  `json:"by"`
	ActorName string `json:"actorname,omitempty"`
}

type CollectionsFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	MemberCode string
	UserIDs    []string
	WorkerIDs  []string
	Method     string
}

func (f CollectionsFilter) HasActorFilter() bool {
	return len(f.UserIDs) > 0 || len(f.WorkerIDs) > 0
}
