package db

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectToDB opens the archive database named in MONGODB_URI.
func ConnectToDB() (*mongo.Database, context.CancelFunc, error) {
	mongoURI := os.Getenv("MONGODB_URI")

	uri, err := url.Parse(mongoURI)
	if err != nil {
		log.Errorf("Error parsing MongoDB URI: %v", err)
		return nil, nil, err
	}

	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		return nil, nil, err
	}

	db := client.Database(dbName)

	return db, cancel, nil
}

// CreateTTLIndexForCollection lets archived matches age out on expires_at.
func CreateTTLIndexForCollection(db *mongo.Database, collectionName string) error {
	collection := db.Collection(collectionName)

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0), // expire at the document's own ExpiresAt
	}

	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	return err
}
