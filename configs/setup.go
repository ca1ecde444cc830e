package configs

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB dials MongoDB and verifies the connection with a ping. The caller
// owns the client and disconnects it at shutdown.
func ConnectDB() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(EnvMongoURI()))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(EnvDatabaseName()).Collection(collectionName)
}

// EnsureIndexes creates the indexes the queries depend on. Index creation is
// idempotent, so this runs unconditionally at boot.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	users := GetCollection(client, "users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	products := GetCollection(client, "products")
	if _, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "retailerId", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}); err != nil {
		return err
	}

	orders := GetCollection(client, "orders")
	if _, err := orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "retailerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "razorpayOrderId", Value: 1}}},
	}); err != nil {
		return err
	}

	tickets := GetCollection(client, "tickets")
	if _, err := tickets.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "retailerId", Value: 1}, {Key: "status", Value: 1}}},
	}); err != nil {
		return err
	}

	// 2dsphere index backing the $near store lookup.
	locations := GetCollection(client, "locations")
	if _, err := locations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "isActive", Value: 1}}},
	}); err != nil {
		return err
	}

	carts := GetCollection(client, "carts")
	if _, err := carts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	// One review per customer per store.
	reviews := GetCollection(client, "reviews")
	_, err := reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "retailerId", Value: 1}, {Key: "customerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
