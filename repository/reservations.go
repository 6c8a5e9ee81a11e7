package repository

import (
	"context"

	"backend/ledger"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRepository only reads: reservation documents are owned by the
// facility subsystem.
type ReservationRepository struct {
	Col *mongo.Collection
}

func NewReservationRepository(col *mongo.Collection) *ReservationRepository {
	return &ReservationRepository{Col: col}
}

func (r *ReservationRepository) Find(ctx context.Context, q ledger.Query) ([]models.Reservation, error) {
	filter := bson.M{}
	if q.MemberCode != "" {
		filter["membercode"] = q.MemberCode
	}
	var clauses []bson.M
	if c := dateClause(q.From, q.To, "created_at", "payments.date"); c != nil {
		clauses = append(clauses, c)
	}
	if len(q.ActorIDs) > 0 {
		in := bson.M{"$in": q.ActorIDs}
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"workerid": in},
			{"createdbyid": in},
			{"payments.by.id": in},
		}})
	}
	if len(clauses) > 0 {
		filter["$and"] = clauses
	}

	cursor, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}
