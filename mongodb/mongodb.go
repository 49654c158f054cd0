package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/supakorn-kn/go-library/env"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 5 * time.Second

type MongoDBConn struct {
	Client *mongo.Client
	opts   *options.ClientOptions
	dbName string
}

func (db *MongoDBConn) Connect() error {

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, db.opts)
	if err != nil {
		return err
	}

	db.Client = client

	return nil
}

// Ping checks the primary is reachable, Connect alone does not dial.
func (db *MongoDBConn) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *MongoDBConn) Disconnect() error {
	return db.Client.Disconnect(context.Background())
}

func (db *MongoDBConn) GetDatabase() *mongo.Database {
	return db.Client.Database(db.dbName)
}

func (db *MongoDBConn) GetCollection(collectionName string) *mongo.Collection {
	return db.GetDatabase().Collection(collectionName)
}

func New(config env.MongoDBConfig) (*MongoDBConn, error) {

	if config.DB == "" {
		return nil, errors.New("database name must not be empty")
	}

	return NewFromURI(config.URI(), config.DB), nil
}

func NewFromURI(uri, dbName string) *MongoDBConn {

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetServerSelectionTimeout(connectTimeout)

	return &MongoDBConn{
		opts:   opts,
		dbName: dbName,
	}
}

// InitConnection connects and pings, so a missing server fails fast.
func InitConnection(config env.MongoDBConfig) (*MongoDBConn, error) {

	conn, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := conn.Connect(); err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Disconnect()
		return nil, err
	}

	return conn, nil
}
