package ledger

import (
	"context"
	"strings"

	"backend/models"
)

func exchangeItem(in models.ExchangeItemInput) models.ExchangeItem {
	total := Round2(in.Total)
	if total == 0 {
		total = Round2(in.Quantity * in.UnitPrice)
	}
	return models.ExchangeItem{
		Name:      in.Name,
		Quantity:  in.Quantity,
		UnitPrice: Round2(in.UnitPrice),
		Total:     total,
	}
}

// CreateExchange swaps a sold line item for another one on a same-day
// sale. The sale's line items and total are rewritten; paid and status are
// deliberately untouched, the price delta is settled by SettleExchange.
func (l *Ledger) CreateExchange(ctx context.Context, input models.ExchangeInput, actingUserID, actingRole string) (*models.Exchange, error) {
	if input.Original.Quantity <= 0 || input.NewItem.Quantity <= 0 {
		return nil, validationf("exchange quantities must be positive")
	}

	unlock := l.lockSale(input.SaleID)
	defer unlock()

	sale, err := l.Sales.FindByID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &NotFoundError{Entity: "sale", ID: input.SaleID}
	}

	now := l.now()
	y1, m1, d1 := sale.CreatedAt.Local().Date()
	y2, m2, d2 := now.Local().Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return nil, validationf("exchanges are allowed only on the day of the sale")
	}

	idx := -1
	for i, it := range sale.Items {
		if strings.EqualFold(it.Name, input.Original.Name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, validationf("item %q is not part of the sale", input.Original.Name)
	}
	line := sale.Items[idx]
	if input.Original.Quantity > line.Quantity {
		return nil, validationf("cannot take back %.2f of %q, only %.2f were sold",
			input.Original.Quantity, line.Name, line.Quantity)
	}

	original := exchangeItem(input.Original)
	original.Name = line.Name
	original.Category = line.Category
	newItem := exchangeItem(input.NewItem)

	product, err := l.Stock.FindByName(ctx, newItem.Name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &NotFoundError{Entity: "product", ID: newItem.Name}
	}
	newItem.Name = product.Name
	newItem.Category = product.Category

	if !EqualAmounts(original.Total, Round2(original.UnitPrice*original.Quantity)) {
		return nil, validationf("original line total does not match unit price and quantity")
	}
	if !EqualAmounts(newItem.Total, Round2(newItem.UnitPrice*newItem.Quantity)) {
		return nil, validationf("new line total does not match unit price and quantity")
	}

	actor, _, err := l.resolveActor(ctx, actingUserID, actingRole, input.WorkerID)
	if err != nil {
		return nil, err
	}

	delta := Round2(newItem.Total - original.Total)

	// The guarded decrement goes first: if the new item is short on stock
	// nothing has moved yet.
	if err := l.Stock.Decrement(ctx, newItem.Name, newItem.Quantity); err != nil {
		return nil, err
	}
	if err := l.Stock.Increment(ctx, original.Name, original.Quantity); err != nil {
		return nil, err
	}

	if input.Original.Quantity >= line.Quantity {
		sale.Items[idx] = models.SaleItem{
			Name:      newItem.Name,
			Category:  newItem.Category,
			Quantity:  newItem.Quantity,
			UnitPrice: newItem.UnitPrice,
			Total:     newItem.Total,
		}
	} else {
		remaining := line.Quantity - input.Original.Quantity
		sale.Items[idx].Quantity = remaining
		sale.Items[idx].Total = Round2(line.UnitPrice * remaining)
		sale.Items = append(sale.Items, models.SaleItem{
			Name:      newItem.Name,
			Category:  newItem.Category,
			Quantity:  newItem.Quantity,
			UnitPrice: newItem.UnitPrice,
			Total:     newItem.Total,
		})
	}

	var sum float64
	for _, it := range sale.Items {
		sum += it.Total
	}
	sale.Total = Round2(sum)
	sale.UpdatedAt = now
	if err := l.Sales.Update(ctx, sale); err != nil {
		return nil, err
	}

	status := models.StatusPending
	if EqualAmounts(delta, 0) {
		status = models.StatusPaid
	}
	ex := &models.Exchange{
		SaleID:        sale.ID,
		MemberCode:    sale.MemberCode,
		MemberName:    sale.MemberName,
		Original:      original,
		NewItem:       newItem,
		PriceDelta:    delta,
		Motive:        input.Motive,
		By:            actor,
		PaymentStatus: status,
		CreatedAt:     now,
	}
	if err := l.Exchanges.Insert(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

// SettleExchange collects or refunds the price delta of a pending
// exchange. The parent sale's paid moves by the delta (floored at zero)
// and its status is re-derived; the exchange keeps the settlement
// metadata and ends PAID or REFUNDED by the sign of the delta.
func (l *Ledger) SettleExchange(ctx context.Context, exchangeID string, input models.SettleInput, actingUserID, actingRole string) (*models.Exchange, error) {
	method := input.Method
	if method == "" {
		method = models.MethodCash
	}
	if err := validateMethod(method, false); err != nil {
		return nil, err
	}

	ex, err := l.Exchanges.FindByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, &NotFoundError{Entity: "exchange", ID: exchangeID}
	}

	unlock := l.lockSale(ex.SaleID.Hex())
	defer unlock()

	// Re-read under the sale lock so two settlements cannot both pass the
	// pending check.
	ex, err = l.Exchanges.FindByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, &NotFoundError{Entity: "exchange", ID: exchangeID}
	}
	if ex.PaymentStatus != models.StatusPending {
		return nil, validationf("exchange is already settled")
	}

	actor, _, err := l.resolveActor(ctx, actingUserID, actingRole, input.WorkerID)
	if err != nil {
		return nil, err
	}

	sale, err := l.Sales.FindByID(ctx, ex.SaleID.Hex())
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &NotFoundError{Entity: "sale", ID: ex.SaleID.Hex()}
	}

	now := l.now()
	sale.Paid = Round2(sale.Paid + ex.PriceDelta)
	if sale.Paid < 0 {
		sale.Paid = 0
	}
	if sale.Paid > sale.Total {
		sale.Paid = sale.Total
	}
	sale.Status = deriveStatus(sale.Paid, sale.Total)
	sale.UpdatedAt = now
	if err := l.Sales.Update(ctx, sale); err != nil {
		return nil, err
	}

	if ex.PriceDelta < 0 {
		ex.PaymentStatus = models.ExchangeRefunded
	} else {
		ex.PaymentStatus = models.StatusPaid
	}
	ex.SettleMethod = method
	ex.SettleNotes = input.Notes
	ex.SettledBy = actor
	ex.SettledAt = &now
	if err := l.Exchanges.Update(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (l *Ledger) GetExchange(ctx context.Context, exchangeID string) (*models.Exchange, error) {
	ex, err := l.Exchanges.FindByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, &NotFoundError{Entity: "exchange", ID: exchangeID}
	}
	return ex, nil
}

func (l *Ledger) ListExchanges(ctx context.Context, q Query) ([]models.Exchange, error) {
	return l.Exchanges.Find(ctx, q)
}
