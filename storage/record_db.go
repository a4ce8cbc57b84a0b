package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"photo-seo/model"
)

// RecordDB keeps a reviewable trace of every generated photo.
type RecordDB interface {
	SaveRecord(ctx context.Context, record model.PhotoRecord) error
	RecordsByBatch(ctx context.Context, batch string) ([]model.PhotoRecord, error)
	Close(ctx context.Context) error
}

type MongoRecordDB struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongo opens the record store and pings it once.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoRecordDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongoRecordDB{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (db *MongoRecordDB) SaveRecord(ctx context.Context, record model.PhotoRecord) error {
	_, err := db.collection.InsertOne(ctx, record)
	return err
}

func (db *MongoRecordDB) RecordsByBatch(ctx context.Context, batch string) ([]model.PhotoRecord, error) {
	cursor, err := db.collection.Find(ctx, bson.D{{Key: "batch", Value: batch}})
	if err != nil {
		return nil, err
	}

	var records []model.PhotoRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (db *MongoRecordDB) Close(ctx context.Context) error {
	if db.client == nil {
		return nil
	}
	return db.client.Disconnect(ctx)
}
