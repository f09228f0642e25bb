package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	currency "github.com/malusev998/currency-archive"
)

type mongoStorage struct {
	ctx        context.Context
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStorage(config MongoDBConfig) (currency.Storage, error) {
	ctx := config.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))

	if err != nil {
		return nil, err
	}

	collection := config.Collection

	if collection == "" {
		collection = DefaultTableName
	}

	st := mongoStorage{
		ctx:        ctx,
		client:     client,
		collection: client.Database(config.Database).Collection(collection),
	}

	if config.Migrate {
		if err := st.Migrate(); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return st, nil
}

func (m mongoStorage) Append(ctx context.Context, entry currency.AuditEntry) (currency.AuditEntryWithID, error) {
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now()
	}

	var payload interface{} = string(entry.Payload)
	var document bson.M

	if err := bson.UnmarshalExtJSON(entry.Payload, false, &document); err == nil {
		payload = document
	}

	result, err := m.collection.InsertOne(ctx, bson.M{
		"url":        entry.URL,
		"date":       entry.Date,
		"payload":    payload,
		"receivedAt": entry.ReceivedAt,
	})

	if err != nil {
		return currency.AuditEntryWithID{}, err
	}

	return currency.AuditEntryWithID{
		AuditEntry: entry,
		ID:         result.InsertedID,
	}, nil
}

func (m mongoStorage) GetStorageProviderName() string {
	return "MongoDB"
}

func (m mongoStorage) Migrate() error {
	_, err := m.collection.Indexes().CreateOne(m.ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "receivedAt", Value: -1}},
	})

	return err
}

func (m mongoStorage) Drop() error {
	return m.collection.Drop(m.ctx)
}

func (m mongoStorage) Close() error {
	return m.client.Disconnect(m.ctx)
}
