package ledger

import (
	"context"

	"backend/models"
)

// DriftReport flags a sale whose paid no longer matches what its payment
// entries and settled exchange deltas add up to. Writes are not
// transactional across the stock/sale/exchange boundary, so a crash
// mid-operation can leave such a sale behind; the nightly sweep makes it
// visible instead of letting it rot silently.
type DriftReport struct {
	SaleID     string  `json:"saleid"`
	MemberName string  `json:"membername"`
	Paid       float64 `json:"paid"`
	Expected   float64 `json:"expected"`
}

func (l *Ledger) CheckPaymentDrift(ctx context.Context, q Query) ([]DriftReport, error) {
	sales, err := l.Sales.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	exchanges, err := l.Exchanges.Find(ctx, Query{})
	if err != nil {
		return nil, err
	}

	deltaBySale := make(map[string]float64)
	for _, ex := range exchanges {
		if ex.PaymentStatus != models.StatusPaid && ex.PaymentStatus != models.ExchangeRefunded {
			continue
		}
		id := ex.SaleID.Hex()
		deltaBySale[id] = Round2(deltaBySale[id] + ex.PriceDelta)
	}

	var reports []DriftReport
	for _, sale := range sales {
		var sum float64
		for _, p := range sale.Payments {
			sum += p.Amount
		}
		expected := Round2(sum + deltaBySale[sale.ID.Hex()])
		if expected < 0 {
			expected = 0
		}
		if expected > sale.Total {
			expected = sale.Total
		}
		if !EqualAmounts(expected, sale.Paid) {
			reports = append(reports, DriftReport{
				SaleID:     sale.ID.Hex(),
				MemberName: sale.MemberName,
				Paid:       sale.Paid,
				Expected:   expected,
			})
		}
	}
	return reports, nil
}
