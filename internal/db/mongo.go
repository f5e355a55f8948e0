package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo wraps the process-wide MongoDB client and the records collection.
type Mongo struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// NewMongo builds a client for uri. The driver dials lazily, so an
// unreachable server only surfaces on the first operation or on Ping.
func NewMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongodb uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &Mongo{
		Client:     client,
		Collection: client.Database(database).Collection(collection),
	}, nil
}

// Ping checks connectivity to the primary within timeout.
func (m *Mongo) Ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
