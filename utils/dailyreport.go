package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"backend/ledger"
	"backend/models"
)

// SendDailyCollectionsReport runs from the scheduler once per day: it
// builds today's collections, mails the summary, and logs every sale
// whose paid amount drifted from what its entries add up to.
func SendDailyCollectionsReport(l *ledger.Ledger) {
	log.Println("Daily collections report started")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	movements, err := l.GetCollections(ctx, models.CollectionsFilter{DateFrom: &from, DateTo: &now})
	if err != nil {
		log.Printf("Daily collections report failed: %v", err)
		return
	}

	totals := map[string]float64{}
	var total float64
	for _, m := range movements {
		totals[m.Source] = ledger.Round2(totals[m.Source] + m.Collected)
		total += m.Collected
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Collections for %s\n\n", from.Format("2006-01-02"))
	fmt.Fprintf(&b, "Movements: %d\n", len(movements))
	for _, source := range []string{models.MovementSale, models.MovementReservation, models.MovementExchange} {
		fmt.Fprintf(&b, "%s: %.2f\n", source, totals[source])
	}
	fmt.Fprintf(&b, "Total collected: %.2f\n\n", ledger.Round2(total))
	for _, m := range movements {
		fmt.Fprintf(&b, "%s  %-11s %8.2f  %s  %s\n",
			m.Date.Format("15:04"), m.Source, m.Collected, m.ActorName, m.Description)
	}

	drift, err := l.CheckPaymentDrift(ctx, ledger.Query{From: &from, To: &now})
	if err != nil {
		log.Printf("Payment drift sweep failed: %v", err)
	}
	for _, d := range drift {
		log.Printf("Payment drift on sale %s (%s): paid %.2f, entries add up to %.2f",
			d.SaleID, d.MemberName, d.Paid, d.Expected)
	}
	if len(drift) > 0 {
		fmt.Fprintf(&b, "\nWARNING: %d sale(s) with payment drift, check the logs\n", len(drift))
	}

	to := os.Getenv("REPORT_EMAIL")
	if to == "" {
		log.Println("REPORT_EMAIL not set, skipping report email")
		return
	}
	subject := fmt.Sprintf("Collections %s: %.2f", from.Format("2006-01-02"), ledger.Round2(total))
	if err := SendEmail(to, subject, b.String()); err != nil {
		log.Printf("Failed to send collections report: %v", err)
		return
	}
	log.Println("Daily collections report sent")
}
