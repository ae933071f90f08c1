//go:build integration

package storage

import (
	"context"
	"os"
	"testing"
)

// Run with: BOXFLOW_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/storage
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("BOXFLOW_MONGO_URI")
	if uri == "" {
		t.Skip("BOXFLOW_MONGO_URI not set")
	}

	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoOptions{URI: uri, Database: "boxflow_test"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	defer s.coll.Drop(ctx)

	storeContract(t, s)
}
