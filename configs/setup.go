package configs

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectDB() *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(Env().MongoURI))
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Connected to MongoDB")

	return client
}

var DB *mongo.Client = ConnectDB()

func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(Env().DBName).Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the controllers rely on:
// order numbers, one shop per owner, one review per (user, order) and
// per (user, item, order).
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"users": {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: unique,
		},
		"shops": {
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: unique,
		},
		"orders": {
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: unique,
		},
		"shopreviews": {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "orderId", Value: 1}},
			Options: unique,
		},
		"itemreviews": {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "menuItemId", Value: 1}, {Key: "orderId", Value: 1}},
			Options: unique,
		},
	}

	for name, model := range indexes {
		if _, err := GetCollection(client, name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("creating index on %s: %w", name, err)
		}
	}
	return nil
}
