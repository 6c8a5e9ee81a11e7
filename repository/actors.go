package repository

import (
	"context"

	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActorDirectory resolves acting users and the delegated workers of store
// accounts.
type ActorDirectory struct {
	Users   *mongo.Collection
	Workers *mongo.Collection
}

func NewActorDirectory(users, workers *mongo.Collection) *ActorDirectory {
	return &ActorDirectory{Users: users, Workers: workers}
}

func (d *ActorDirectory) FindUser(ctx context.Context, userID string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	var user models.User
	err = d.Users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (d *ActorDirectory) StoreOfUser(ctx context.Context, userID string) (string, error) {
	user, err := d.FindUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.StoreID, nil
}

// FindActiveWorker returns nil when the worker does not exist, is not
// active, or belongs to a different store.
func (d *ActorDirectory) FindActiveWorker(ctx context.Context, workerID, storeID string) (*models.Worker, error) {
	objID, err := primitive.ObjectIDFromHex(workerID)
	if err != nil {
		return nil, nil
	}
	var worker models.Worker
	err = d.Workers.FindOne(ctx, bson.M{"_id": objID, "storeid": storeID, "active": true}).Decode(&worker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &worker, nil
}
