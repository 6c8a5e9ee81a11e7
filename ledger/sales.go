package ledger

import (
	"context"
	"time"

	"backend/models"

	"github.com/google/uuid"
)

func deriveStatus(paid, total float64) string {
	switch {
	case EqualAmounts(paid, total):
		return models.StatusPaid
	case paid > 0:
		return models.StatusPartiallyPaid
	default:
		return models.StatusPending
	}
}

// TRANSFER is accepted only when the sale is created; later payments are
// taken at the till in cash or by card.
func validateMethod(method string, creation bool) error {
	switch method {
	case models.MethodCash, models.MethodCard:
		return nil
	case models.MethodTransfer:
		if creation {
			return nil
		}
	}
	return validationf("unsupported payment method %q", method)
}

// applyPayment appends one payment entry and re-derives paid and status.
// The initial paid amount of a new sale goes through here too, so entry
// synthesis, rounding and attribution live in one place. The sale's
// delegated worker is set from the entry only when not already set: who
// made the sale stays distinct from who later collected on it.
func (l *Ledger) applyPayment(sale *models.Sale, amount float64, method, notes string, by models.Actor, when time.Time) {
	sale.Payments = append(sale.Payments, models.PaymentEntry{
		Date:   when,
		Amount: amount,
		Method: method,
		Notes:  notes,
		By:     by,
	})
	sale.Paid = Round2(sale.Paid + amount)
	if sale.Paid < 0 {
		sale.Paid = 0
	}
	if sale.Paid > sale.Total {
		sale.Paid = sale.Total
	}
	sale.Status = deriveStatus(sale.Paid, sale.Total)
	if sale.WorkerID == "" && by.IsWorker() {
		sale.WorkerID = by.ID
		sale.WorkerName = by.Name
	}
}

func (l *Ledger) CreateSale(ctx context.Context, input models.SaleInput, actingUserID, actingRole string) (*models.Sale, error) {
	if len(input.Items) == 0 {
		return nil, validationf("a sale needs at least one item")
	}
	method := input.Method
	if method == "" {
		method = models.MethodCash
	}
	if err := validateMethod(method, true); err != nil {
		return nil, err
	}

	total := Round2(input.Total)
	paid := Round2(input.Paid)
	if total < 0 || paid < 0 {
		return nil, validationf("amounts cannot be negative")
	}
	if paid < total && !EqualAmounts(paid, total) && input.Notes == "" {
		return nil, validationf("notes are required for a partial payment")
	}
	if paid > total {
		paid = total
	}

	actor, user, err := l.resolveActor(ctx, actingUserID, actingRole, input.WorkerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.SaleItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, validationf("quantity must be positive for %q", in.Name)
		}
		product, err := l.Stock.FindByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &NotFoundError{Entity: "product", ID: in.Name}
		}
		if err := l.Stock.Decrement(ctx, in.Name, in.Quantity); err != nil {
			return nil, err
		}
		lineTotal := Round2(in.Total)
		if lineTotal == 0 {
			lineTotal = Round2(in.Quantity * in.UnitPrice)
		}
		items = append(items, models.SaleItem{
			Name:      product.Name,
			Category:  product.Category,
			Quantity:  in.Quantity,
			UnitPrice: Round2(in.UnitPrice),
			Total:     lineTotal,
		})
	}

	now := l.now()
	sale := &models.Sale{
		MemberCode:    input.MemberCode,
		MemberName:    input.MemberName,
		IsMember:      input.IsMember,
		Items:         items,
		Total:         total,
		Status:        models.StatusPending,
		Method:        method,
		Notes:         input.Notes,
		CreatedByID:   user.ID.Hex(),
		CreatedByName: user.FullName(),
		ViewToken:     uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if actor.IsWorker() {
		sale.WorkerID = actor.ID
		sale.WorkerName = actor.Name
	}
	if paid > 0 {
		l.applyPayment(sale, paid, method, input.Notes, actor, now)
	}

	if err := l.Sales.Insert(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (l *Ledger) RegisterPayment(ctx context.Context, saleID string, input models.PaymentInput, actingUserID, actingRole string) (*models.Sale, error) {
	method := input.Method
	if method == "" {
		method = models.MethodCash
	}
	if err := validateMethod(method, false); err != nil {
		return nil, err
	}
	amount := Round2(input.Amount)
	if amount <= 0 {
		return nil, validationf("amount must be positive")
	}

	unlock := l.lockSale(saleID)
	defer unlock()

	sale, err := l.Sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &NotFoundError{Entity: "sale", ID: saleID}
	}

	pending := Round2(Round2(sale.Total) - Round2(sale.Paid))
	if pending < amountTolerance {
		return nil, validationf("sale is already fully paid")
	}
	if amount > pending {
		// Cash overpayment is fine, change is handled at the till and the
		// persisted amount is clamped. Anything else must match.
		if amount-pending < amountTolerance || method == models.MethodCash {
			amount = pending
		} else {
			return nil, validationf("payment of %.2f exceeds pending %.2f for method %s", amount, pending, method)
		}
	}

	actor, _, err := l.resolveActor(ctx, actingUserID, actingRole, input.WorkerID)
	if err != nil {
		return nil, err
	}

	now := l.now()
	l.applyPayment(sale, amount, method, input.Notes, actor, now)
	sale.UpdatedAt = now

	if err := l.Sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (l *Ledger) GetSale(ctx context.Context, saleID string) (*models.Sale, error) {
	sale, err := l.Sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &NotFoundError{Entity: "sale", ID: saleID}
	}
	return sale, nil
}

func (l *Ledger) SaleByViewToken(ctx context.Context, token string) (*models.Sale, error) {
	sale, err := l.Sales.FindByViewToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &NotFoundError{Entity: "receipt", ID: token}
	}
	return sale, nil
}

func (l *Ledger) ListSales(ctx context.Context, q Query) ([]models.Sale, error) {
	return l.Sales.Find(ctx, q)
}
