package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	saveTimeout = time.Second
	findTimeout = 2 * time.Second
)

var _ i.RunRepo = &RunRepo{}

// RunRepo persists the summaries of finished floods.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts a run summary or replaces the one archived under the same session ID.
func (r *RunRepo) Save(ctx context.Context, run *domain.RunSummary) error {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, run, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves the run summary archived for a session.
// Returns i.ErrRunNotFound if there is none.
func (r *RunRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.RunSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, findTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	var run domain.RunSummary
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrRunNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &run, nil
}
