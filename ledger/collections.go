package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"backend/models"
)

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// entryActor normalizes the stored attribution: anything that is not a
// proper user or worker tag (including zero values from old documents)
// collapses into the unknown variant.
func entryActor(a models.Actor) models.Actor {
	if a.IsUnknown() {
		return models.UnknownActor()
	}
	return a
}

// displayName resolves the name shown on a row. A row whose entry carries
// no actor of its own falls back to the parent record's worker, then its
// creating user — but its filterable attribution stays unknown.
func displayName(by models.Actor, workerName, userName string) string {
	if !by.IsUnknown() {
		return by.Name
	}
	if workerName != "" {
		return workerName
	}
	return userName
}

// A movement matches a user filter only when it carries a user
// attribution, and a worker filter only when it carries a worker
// attribution; unknown rows never match anyone.
func matchesActor(by models.Actor, f models.CollectionsFilter) bool {
	switch by.Kind {
	case models.ActorWorker:
		return containsID(f.WorkerIDs, by.ID)
	case models.ActorUser:
		return containsID(f.UserIDs, by.ID)
	}
	return false
}

func describeItems(items []models.SaleItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%g x %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

// GetCollections flattens sales, reservations and settled exchanges into
// dated movement rows. Filtering runs in two phases: the repositories
// narrow the documents, then the flattened rows are filtered again —
// a sale can hold payments from several different actors, so the
// document-level filter alone is too coarse.
func (l *Ledger) GetCollections(ctx context.Context, f models.CollectionsFilter) ([]models.Movement, error) {
	q := Query{From: f.DateFrom, To: f.DateTo, MemberCode: f.MemberCode}
	q.ActorIDs = append(q.ActorIDs, f.UserIDs...)
	q.ActorIDs = append(q.ActorIDs, f.WorkerIDs...)

	var movements []models.Movement

	sales, err := l.Sales.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		desc := describeItems(sale.Items)
		var cumulative float64
		for _, p := range sale.Payments {
			cumulative = Round2(cumulative + p.Amount)
			movements = append(movements, models.Movement{
				Source:      models.MovementSale,
				Date:        p.Date,
				MemberCode:  sale.MemberCode,
				MemberName:  sale.MemberName,
				Description: desc,
				Amount:      Round2(p.Amount),
				Collected:   Round2(p.Amount),
				Cumulative:  cumulative,
				Method:      p.Method,
				By:          entryActor(p.By),
				ActorName:   displayName(p.By, sale.WorkerName, sale.CreatedByName),
			})
		}
	}

	reservations, err := l.Reservations.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		if len(r.Payments) > 0 {
			for _, p := range r.Payments {
				movements = append(movements, models.Movement{
					Source:      models.MovementReservation,
					Date:        p.Date,
					MemberCode:  r.MemberCode,
					MemberName:  r.MemberName,
					Description: r.Facility,
					Amount:      Round2(p.Amount),
					Collected:   Round2(p.Amount),
					Method:      p.Method,
					By:          entryActor(p.By),
					ActorName:   displayName(p.By, r.WorkerName, r.CreatedByName),
				})
			}
			continue
		}
		if r.AmountPaid > 0 {
			// Only an aggregate figure survives on old documents; the row
			// exists but nobody can be credited for it.
			movements = append(movements, models.Movement{
				Source:      models.MovementReservation,
				Date:        r.CreatedAt,
				MemberCode:  r.MemberCode,
				MemberName:  r.MemberName,
				Description: r.Facility,
				Amount:      Round2(r.AmountPaid),
				Collected:   Round2(r.AmountPaid),
				By:          models.UnknownActor(),
				ActorName:   displayName(models.UnknownActor(), r.WorkerName, r.CreatedByName),
			})
		}
		// a reservation with no money received produces no row
	}

	exchanges, err := l.Exchanges.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, ex := range exchanges {
		if ex.PaymentStatus != models.StatusPaid && ex.PaymentStatus != models.ExchangeRefunded {
			continue
		}
		if EqualAmounts(ex.PriceDelta, 0) {
			continue
		}
		date := ex.CreatedAt
		if ex.SettledAt != nil {
			date = *ex.SettledAt
		}
		movements = append(movements, models.Movement{
			Source:      models.MovementExchange,
			Date:        date,
			MemberCode:  ex.MemberCode,
			MemberName:  ex.MemberName,
			Description: fmt.Sprintf("%s for %s", ex.Original.Name, ex.NewItem.Name),
			Amount:      Round2(math.Abs(ex.PriceDelta)),
			Collected:   Round2(ex.PriceDelta),
			Method:      ex.SettleMethod,
			By:          entryActor(ex.SettledBy),
			ActorName:   displayName(ex.SettledBy, ex.By.Name, ""),
		})
	}

	filtered := make([]models.Movement, 0, len(movements))
	for _, m := range movements {
		if f.DateFrom != nil && m.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && m.Date.After(*f.DateTo) {
			continue
		}
		if f.MemberCode != "" && m.MemberCode != f.MemberCode {
			continue
		}
		if f.Method != "" && m.Method != f.Method {
			continue
		}
		if f.HasActorFilter() && !matchesActor(m.By, f) {
			continue
		}
		filtered = append(filtered, m)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})
	return filtered, nil
}
