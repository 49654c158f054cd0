// Package mongodbtest connects test suites to a disposable MongoDB database.
package mongodbtest

import (
	"context"
	"testing"

	"github.com/supakorn-kn/go-library/env"
	"github.com/supakorn-kn/go-library/mongodb"
)

// Connect opens a connection to database "go-library_test_<name>" and skips the test
// when no MongoDB server is reachable. The database is dropped on cleanup.
func Connect(t testing.TB, name string) *mongodb.MongoDBConn {

	t.Helper()

	config, err := env.GetEnv()
	if err != nil {
		t.Fatalf("Loading config failed: %v", err)
	}

	mongoConfig := config.MongoDB
	mongoConfig.DB = "go-library_test_" + name

	conn, err := mongodb.InitConnection(mongoConfig)
	if err != nil {
		t.Skipf("MongoDB is not reachable at %s: %v", mongoConfig.URI(), err)
	}

	t.Cleanup(func() {
		conn.GetDatabase().Drop(context.Background())
		conn.Disconnect()
	})

	return conn
}
