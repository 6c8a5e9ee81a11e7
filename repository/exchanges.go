package repository

import (
	"context"

	"backend/ledger"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ExchangeRepository struct {
	Col *mongo.Collection
}

func NewExchangeRepository(col *mongo.Collection) *ExchangeRepository {
	return &ExchangeRepository{Col: col}
}

func (r *ExchangeRepository) Insert(ctx context.Context, ex *models.Exchange) error {
	res, err := r.Col.InsertOne(ctx, ex)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		ex.ID = id
	}
	return nil
}

func (r *ExchangeRepository) FindByID(ctx context.Context, id string) (*models.Exchange, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var ex models.Exchange
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&ex)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &ex, nil
}

func (r *ExchangeRepository) Update(ctx context.Context, ex *models.Exchange) error {
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": ex.ID}, ex)
	return err
}

// Find narrows by date over both creation and settlement time: an exchange
// settled after its creation day is collected on the settlement day.
func (r *ExchangeRepository) Find(ctx context.Context, q ledger.Query) ([]models.Exchange, error) {
	filter := bson.M{}
	if q.MemberCode != "" {
		filter["membercode"] = q.MemberCode
	}
	var clauses []bson.M
	if c := dateClause(q.From, q.To, "created_at", "settledat"); c != nil {
		clauses = append(clauses, c)
	}
	if len(q.ActorIDs) > 0 {
		in := bson.M{"$in": q.ActorIDs}
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"by.id": in},
			{"settledby.id": in},
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

	var exchanges []models.Exchange
	if err = cursor.All(ctx, &exchanges); err != nil {
		return nil, err
	}
	return exchanges, nil
}
