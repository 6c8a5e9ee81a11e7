package ledger

import (
	"context"
	"sync"
	"time"

	"backend/models"
)

// Query is the coarse, document-level filter pushed down to the
// repositories. The aggregator re-filters the flattened movements
// afterwards, because one sale can hold payments from several actors.
type Query struct {
	From       *time.Time
	To         *time.Time
	MemberCode string
	ActorIDs   []string
}

// StockRepository is the per-product available-quantity counter.
// Decrement is a single conditional update (available >= qty), so two
// concurrent sales of a scarce product cannot both pass the check.
type StockRepository interface {
	FindByName(ctx context.Context, name string) (*models.Product, error)
	Decrement(ctx context.Context, name string, qty float64) error
	Increment(ctx context.Context, name string, qty float64) error
}

type SaleRepository interface {
	Insert(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id string) (*models.Sale, error)
	FindByViewToken(ctx context.Context, token string) (*models.Sale, error)
	Update(ctx context.Context, sale *models.Sale) error
	Find(ctx context.Context, q Query) ([]models.Sale, error)
}

type ExchangeRepository interface {
	Insert(ctx context.Context, ex *models.Exchange) error
	FindByID(ctx context.Context, id string) (*models.Exchange, error)
	Update(ctx context.Context, ex *models.Exchange) error
	Find(ctx context.Context, q Query) ([]models.Exchange, error)
}

// ReservationRepository is read-only: reservations are owned by the
// facility subsystem and only feed the collections report.
type ReservationRepository interface {
	Find(ctx context.Context, q Query) ([]models.Reservation, error)
}

type ActorDirectory interface {
	FindUser(ctx context.Context, userID string) (*models.User, error)
	StoreOfUser(ctx context.Context, userID string) (string, error)
	FindActiveWorker(ctx context.Context, workerID, storeID string) (*models.Worker, error)
}

// Ledger is the sale/exchange settlement core. All mutating operations on
// a sale are serialized per sale id so paid always equals the sum of its
// payment entries.
type Ledger struct {
	Stock        StockRepository
	Sales        SaleRepository
	Exchanges    ExchangeRepository
	Reservations ReservationRepository
	Actors       ActorDirectory

	now func() time.Time

	mu        sync.Mutex
	saleLocks map[string]*sync.Mutex
}

func New(stock StockRepository, sales SaleRepository, exchanges ExchangeRepository,
	reservations ReservationRepository, actors ActorDirectory) *Ledger {
	return &Ledger{
		Stock:        stock,
		Sales:        sales,
		Exchanges:    exchanges,
		Reservations: reservations,
		Actors:       actors,
		now:          time.Now,
		saleLocks:    make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) lockSale(saleID string) func() {
	l.mu.Lock()
	m, ok := l.saleLocks[saleID]
	if !ok {
		m = &sync.Mutex{}
		l.saleLocks[saleID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
