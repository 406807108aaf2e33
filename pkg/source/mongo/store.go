// Package mongo stores tasks in a MongoDB collection, one document per
// task keyed by task id.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/source"
	"github.com/matzehuels/stackgantt/pkg/task"
)

const (
	DefaultDatabase   = "stackgantt"
	DefaultCollection = "tasks"

	connectTimeout = 10 * time.Second
)

// Store is a task collection.
type Store struct {
	client *mgo.Client
	coll   *mgo.Collection
}

// Options configures [Connect].
type Options struct {
	URI        string
	Database   string
	Collection string
}

// document is a task plus its position in the chart's input order.
type document struct {
	task.Task `bson:",inline"`
	Seq       int `bson:"seq"`
}

// Connect opens a client and checks the server is reachable.
func Connect(ctx context.Context, opts Options) (*Store, error) {
	if err := errors.ValidateMongoURI(opts.URI); err != nil {
		return nil, err
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mgo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}
	return &Store{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

func (s *Store) Name() string {
	return "mongo:" + s.coll.Database().Name() + "." + s.coll.Name()
}

// Load reads every task in stored order and validates the set.
func (s *Store) Load(ctx context.Context) (task.Snapshot, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return task.Snapshot{}, errors.Wrap(errors.ErrCodeStore, err, "load tasks from %s", s.Name())
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return task.Snapshot{}, errors.Wrap(errors.ErrCodeStore, err, "decode tasks from %s", s.Name())
	}
	return task.NewSnapshot(fromDocuments(docs))
}

// Save upserts every task of snap and drops documents not in it.
func (s *Store) Save(ctx context.Context, snap task.Snapshot) error {
	docs := toDocuments(snap.Tasks())
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: d.ID}}, d, options.Replace().SetUpsert(true))
		if err != nil {
			return errors.Wrap(errors.ErrCodeStore, err, "save task %q", d.ID)
		}
	}
	_, err := s.coll.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$nin", Value: ids}}}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "prune tasks")
	}
	return nil
}

// Delete removes one task document. References from other tasks are
// left for the caller, which deletes through a snapshot first.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete task %q", id)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocuments(tasks []task.Task) []document {
	docs := make([]document, len(tasks))
	for i, t := range tasks {
		docs[i] = document{Task: t, Seq: i}
	}
	return docs
}

func fromDocuments(docs []document) []task.Task {
	tasks := make([]task.Task, len(docs))
	for i, d := range docs {
		tasks[i] = d.Task
	}
	return tasks
}

var _ source.Store = (*Store)(nil)
