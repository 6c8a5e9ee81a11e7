package repository

import (
	"context"
	"strings"
	"time"

	"backend/ledger"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StockRepository mutates the per-product quantity counters. Lookup goes
// through the lowercased namekey so product identity is case-insensitive.
type StockRepository struct {
	Col *mongo.Collection
}

func NewStockRepository(col *mongo.Collection) *StockRepository {
	return &StockRepository{Col: col}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *StockRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := r.Col.FindOne(ctx, bson.M{"namekey": nameKey(name)}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Decrement is a single conditional update: the quantity guard sits in the
// filter, so two concurrent sales of a scarce product cannot both pass.
func (r *StockRepository) Decrement(ctx context.Context, name string, qty float64) error {
	filter := bson.M{
		"namekey":  nameKey(name),
		"quantity": bson.M{"$gte": qty},
	}
	update := bson.M{
		"$inc": bson.M{"quantity": -qty},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		product, err := r.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if product == nil {
			return &ledger.NotFoundError{Entity: "product", ID: name}
		}
		return &ledger.InsufficientStockError{
			Product:   product.Name,
			Requested: qty,
			Available: product.Quantity,
		}
	}
	return nil
}

func (r *StockRepository) Increment(ctx context.Context, name string, qty float64) error {
	update := bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"namekey": nameKey(name)}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &ledger.NotFoundError{Entity: "product", ID: name}
	}
	return nil
}
