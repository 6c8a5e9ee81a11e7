package ledger_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"backend/ledger"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// =============================================================================
// IN-MEMORY REPOSITORIES
// =============================================================================

type memStock struct {
	mu       sync.Mutex
	products map[string]*models.Product
}

func newMemStock() *memStock {
	return &memStock{products: make(map[string]*models.Product)}
}

func (s *memStock) add(name, category string, qty, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[strings.ToLower(name)] = &models.Product{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameKey:      strings.ToLower(name),
		Category:     category,
		Quantity:     qty,
		SellingPrice: price,
	}
}

func (s *memStock) quantity(name string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[strings.ToLower(name)]; ok {
		return p.Quantity
	}
	return 0
}

func (s *memStock) totalQuantity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, p := range s.products {
		total += p.Quantity
	}
	return total
}

func (s *memStock) FindByName(_ context.Context, name string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memStock) Decrement(_ context.Context, name string, qty float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return &ledger.NotFoundError{Entity: "product", ID: name}
	}
	if p.Quantity < qty {
		return &ledger.InsufficientStockError{Product: p.Name, Requested: qty, Available: p.Quantity}
	}
	p.Quantity -= qty
	return nil
}

func (s *memStock) Increment(_ context.Context, name string, qty float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return &ledger.NotFoundError{Entity: "product", ID: name}
	}
	p.Quantity += qty
	return nil
}

func copySale(sale *models.Sale) *models.Sale {
	cp := *sale
	cp.Items = append([]models.SaleItem(nil), sale.Items...)
	cp.Payments = append([]models.PaymentEntry(nil), sale.Payments...)
	return &cp
}

type memSales struct {
	mu    sync.Mutex
	sales map[string]*models.Sale
}

func newMemSales() *memSales {
	return &memSales{sales: make(map[string]*models.Sale)}
}

func (s *memSales) Insert(_ context.Context, sale *models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.ID = primitive.NewObjectID()
	s.sales[sale.ID.Hex()] = copySale(sale)
	return nil
}

func (s *memSales) FindByID(_ context.Context, id string) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[id]
	if !ok {
		return nil, nil
	}
	return copySale(sale), nil
}

func (s *memSales) FindByViewToken(_ context.Context, token string) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range s.sales {
		if sale.ViewToken == token {
			return copySale(sale), nil
		}
	}
	return nil, nil
}

func (s *memSales) Update(_ context.Context, sale *models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales[sale.ID.Hex()] = copySale(sale)
	return nil
}

func inRange(t time.Time, q ledger.Query) bool {
	if q.From != nil && t.Before(*q.From) {
		return false
	}
	if q.To != nil && t.After(*q.To) {
		return false
	}
	return true
}

// anyInRange mirrors the mongo date narrowing: a document matches when any
// of its dates (creation, payment entries, settlement) falls in the window.
func anyInRange(q ledger.Query, times ...time.Time) bool {
	for _, t := range times {
		if inRange(t, q) {
			return true
		}
	}
	return false
}

func anyIDMatch(ids []string, candidates ...string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		for _, c := range candidates {
			if c != "" && id == c {
				return true
			}
		}
	}
	return false
}

// Find mimics the coarse document-level mongo filter: a sale matches the
// actor ids when any of them appears at the top level or on any entry.
func (s *memSales) Find(_ context.Context, q ledger.Query) ([]models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Sale
	for _, sale := range s.sales {
		dates := []time.Time{sale.CreatedAt}
		for _, p := range sale.Payments {
			dates = append(dates, p.Date)
		}
		if !anyInRange(q, dates...) {
			continue
		}
		if q.MemberCode != "" && sale.MemberCode != q.MemberCode {
			continue
		}
		candidates := []string{sale.WorkerID, sale.CreatedByID}
		for _, p := range sale.Payments {
			candidates = append(candidates, p.By.ID)
		}
		if !anyIDMatch(q.ActorIDs, candidates...) {
			continue
		}
		out = append(out, *copySale(sale))
	}
	return out, nil
}

type memExchanges struct {
	mu        sync.Mutex
	exchanges map[string]*models.Exchange
}

func newMemExchanges() *memExchanges {
	return &memExchanges{exchanges: make(map[string]*models.Exchange)}
}

func (s *memExchanges) Insert(_ context.Context, ex *models.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex.ID = primitive.NewObjectID()
	cp := *ex
	s.exchanges[ex.ID.Hex()] = &cp
	return nil
}

func (s *memExchanges) FindByID(_ context.Context, id string) (*models.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex, ok := s.exchanges[id]
	if !ok {
		return nil, nil
	}
	cp := *ex
	return &cp, nil
}

func (s *memExchanges) Update(_ context.Context, ex *models.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ex
	s.exchanges[ex.ID.Hex()] = &cp
	return nil
}

func (s *memExchanges) Find(_ context.Context, q ledger.Query) ([]models.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Exchange
	for _, ex := range s.exchanges {
		dates := []time.Time{ex.CreatedAt}
		if ex.SettledAt != nil {
			dates = append(dates, *ex.SettledAt)
		}
		if !anyInRange(q, dates...) {
			continue
		}
		if q.MemberCode != "" && ex.MemberCode != q.MemberCode {
			continue
		}
		if !anyIDMatch(q.ActorIDs, ex.By.ID, ex.SettledBy.ID) {
			continue
		}
		out = append(out, *ex)
	}
	return out, nil
}

type memReservations struct {
	mu    sync.Mutex
	items []models.Reservation
}

func (s *memReservations) add(r models.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
}

func (s *memReservations) Find(_ context.Context, q ledger.Query) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reservation
	for _, r := range s.items {
		dates := []time.Time{r.CreatedAt}
		for _, p := range r.Payments {
			dates = append(dates, p.Date)
		}
		if !anyInRange(q, dates...) {
			continue
		}
		if q.MemberCode != "" && r.MemberCode != q.MemberCode {
			continue
		}
		candidates := []string{r.WorkerID, r.CreatedByID}
		for _, p := range r.Payments {
			candidates = append(candidates, p.By.ID)
		}
		if !anyIDMatch(q.ActorIDs, candidates...) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type memActors struct {
	users   map[string]*models.User
	workers map[string]*models.Worker
}

func newMemActors() *memActors {
	return &memActors{
		users:   make(map[string]*models.User),
		workers: make(map[string]*models.Worker),
	}
}

func (a *memActors) addUser(firstName, role, storeID string) string {
	u := &models.User{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		Role:      role,
		StoreID:   storeID,
	}
	a.users[u.ID.Hex()] = u
	return u.ID.Hex()
}

func (a *memActors) addWorker(firstName, storeID string, active bool) string {
	w := &models.Worker{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		StoreID:   storeID,
		Active:    active,
	}
	a.workers[w.ID.Hex()] = w
	return w.ID.Hex()
}

func (a *memActors) FindUser(_ context.Context, userID string) (*models.User, error) {
	u, ok := a.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (a *memActors) StoreOfUser(_ context.Context, userID string) (string, error) {
	u, ok := a.users[userID]
	if !ok {
		return "", nil
	}
	return u.StoreID, nil
}

func (a *memActors) FindActiveWorker(_ context.Context, workerID, storeID string) (*models.Worker, error) {
	w, ok := a.workers[workerID]
	if !ok || !w.Active || w.StoreID != storeID {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

// =============================================================================
// TEST SETUP
// =============================================================================

type env struct {
	led          *ledger.Ledger
	stock        *memStock
	sales        *memSales
	exchanges    *memExchanges
	reservations *memReservations
	actors       *memActors

	staffID  string // direct staff user
	storeID  string // store account user
	workerID string // active worker of the store account's store
}

func newTestLedger(t *testing.T) *env {
	t.Helper()

	e := &env{
		stock:        newMemStock(),
		sales:        newMemSales(),
		exchanges:    newMemExchanges(),
		reservations: &memReservations{},
		actors:       newMemActors(),
	}
	e.led = ledger.New(e.stock, e.sales, e.exchanges, e.reservations, e.actors)

	e.stock.add("Towel", "Textile", 10, 10.00)
	e.stock.add("Cap", "Apparel", 10, 12.00)
	e.stock.add("Bottle", "Accessories", 10, 8.00)

	e.staffID = e.actors.addUser("Ana", models.RoleStaff, "")
	e.storeID = e.actors.addUser("Kiosk", models.RoleStore, "store-1")
	e.workerID = e.actors.addWorker("Bruno", "store-1", true)
	return e
}

func saleInput(total, paid float64, notes string) models.SaleInput {
	return models.SaleInput{
		MemberCode: "M-001",
		MemberName: "Carla Diaz",
		IsMember:   true,
		Items: []models.SaleItemInput{
			{Name: "Towel", Quantity: 3, UnitPrice: 10.00, Total: 30.00},
		},
		Total: total,
		Paid:  paid,
		Notes: notes,
	}
}
