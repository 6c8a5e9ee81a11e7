package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client                *mongo.Client
	UserCollection        *mongo.Collection
	WorkerCollection      *mongo.Collection
	ProductCollection     *mongo.Collection
	SaleCollection        *mongo.Collection
	ExchangeCollection    *mongo.Collection
	ReservationCollection *mongo.Collection
)

func ConnectDatabase() {
	client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	Client = client
	db := os.Getenv("MONGO_DB")
	if db == "" {
		db = "clubledger"
	}

	UserCollection = client.Database(db).Collection("users")
	WorkerCollection = client.Database(db).Collection("workers")
	ProductCollection = client.Database(db).Collection("products")
	SaleCollection = client.Database(db).Collection("sales")
	ExchangeCollection = client.Database(db).Collection("exchanges")
	ReservationCollection = client.Database(db).Collection("reservations")

	log.Println("Connected to MongoDB")
}
