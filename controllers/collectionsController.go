package controllers

import (
	"net/http"
	"strings"
	"time"

	"backend/ledger"
	"backend/models"

	"github.com/gin-gonic/gin"
)

// parseDay accepts YYYY-MM-DD; anything else counts as not supplied.
// Optional report filters degrade instead of failing the request.
func parseDay(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func splitIDs(value string) []string {
	if value == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

func parseQuery(c *gin.Context) ledger.Query {
	q := ledger.Query{MemberCode: c.Query("memberCode")}
	q.From = parseDay(c.Query("dateFrom"))
	if to := parseDay(c.Query("dateTo")); to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		q.To = &end
	}
	return q
}

func parseCollectionsFilter(c *gin.Context) models.CollectionsFilter {
	f := models.CollectionsFilter{
		MemberCode: c.Query("memberCode"),
		UserIDs:    splitIDs(c.Query("userIds")),
		WorkerIDs:  splitIDs(c.Query("workerIds")),
		Method:     strings.ToUpper(c.Query("method")),
	}
	f.DateFrom = parseDay(c.Query("dateFrom"))
	if to := parseDay(c.Query("dateTo")); to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}
	return f
}

func GetCollections(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	movements, err := Ledger.GetCollections(ctx, parseCollectionsFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var total float64
	for _, m := range movements {
		total += m.Collected
	}
	c.JSON(http.StatusOK, gin.H{
		"movements": movements,
		"count":     len(movements),
		"total":     ledger.Round2(total),
	})
}

// GetDailyCollections is today's report, the same rows the nightly
// summary email carries.
func GetDailyCollections(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	filter := models.CollectionsFilter{DateFrom: &from, DateTo: &now}

	movements, err := Ledger.GetCollections(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	totals := map[string]float64{}
	var total float64
	for _, m := range movements {
		totals[m.Source] = ledger.Round2(totals[m.Source] + m.Collected)
		total += m.Collected
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      from.Format("2006-01-02"),
		"movements": movements,
		"count":     len(movements),
		"bysource":  totals,
		"total":     ledger.Round2(total),
	})
}
