package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// dateClause matches documents where any of the given date fields falls in
// the window. The collections report dates rows by entry-level timestamps
// (payment dates, settlement time), so narrowing on created_at alone would
// drop documents whose money arrived on a later day.
func dateClause(from, to *time.Time, fields ...string) bson.M {
	r := bson.M{}
	if from != nil {
		r["$gte"] = *from
	}
	if to != nil {
		r["$lte"] = *to
	}
	if len(r) == 0 {
		return nil
	}
	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: r})
	}
	return bson.M{"$or": or}
}
