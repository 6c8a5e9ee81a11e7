package repository

import (
	"context"

	"backend/ledger"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SaleRepository struct {
	Col *mongo.Collection
}

func NewSaleRepository(col *mongo.Collection) *SaleRepository {
	return &SaleRepository{Col: col}
}

func (r *SaleRepository) Insert(ctx context.Context, sale *models.Sale) error {
	res, err := r.Col.InsertOne(ctx, sale)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		sale.ID = id
	}
	return nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var sale models.Sale
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&sale)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) FindByViewToken(ctx context.Context, token string) (*models.Sale, error) {
	var sale models.Sale
	err := r.Col.FindOne(ctx, bson.M{"view_token": token}).Decode(&sale)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) Update(ctx context.Context, sale *models.Sale) error {
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": sale.ID}, sale)
	return err
}

// Find is the coarse first filtering phase of the collections report: it
// narrows by date, member and any actor appearing on the document or its
// payment entries. A sale paid off days after creation still matches through
// its payment dates. The aggregator re-filters the flattened rows.
func (r *SaleRepository) Find(ctx context.Context, q ledger.Query) ([]models.Sale, error) {
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

	var sales []models.Sale
	if err = cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
