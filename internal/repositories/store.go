package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when a single targeted document does not exist
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique key is already taken
	ErrDuplicate = errors.New("document already exists")
)

// Sequence names in the counters collection
const (
	SeqUsers          = "users"
	SeqPosts          = "posts"
	SeqComments       = "comments"
	SeqAnnouncements  = "announcements"
	SeqReports        = "reports"
	SeqCommentReports = "commentReports"
)

// Collections names every MongoDB collection the forum uses
type Collections struct {
	Category       string
	Tags           string
	Posts          string
	Users          string
	Comments       string
	Announcements  string
	Reports        string
	CommentReports string
	Counters       string
}

// Store owns the MongoDB database handle shared by all repositories
type Store struct {
	db              *mongo.Database
	names           Collections
	useTransactions bool
}

// NewStore creates a Store. With useTransactions the multi-document writes run in a MongoDB
// transaction, which needs a replica set; otherwise completed steps are undone on failure.
func NewStore(db *mongo.Database, names Collections, useTransactions bool) *Store {
	return &Store{db: db, names: names, useTransactions: useTransactions}
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// NextID atomically increments and returns the named sequence
func (s *Store) NextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.collection(s.names.Counters).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return counter.Seq, nil
}

// seedSequence raises a sequence to the highest id already stored so that data written before
// sequences existed never collides with new ids.
func (s *Store) seedSequence(ctx context.Context, name, collection, field string) error {
	var top bson.M
	opts := options.FindOne().SetSort(bson.D{{Key: field, Value: -1}}).SetProjection(bson.M{field: 1})
	err := s.collection(collection).FindOne(ctx, bson.M{field: bson.M{"$type": "number"}}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}
	highest, ok := toInt64(top[field])
	if !ok {
		return nil
	}
	_, err = s.collection(s.names.Counters).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": highest}},
		options.Update().SetUpsert(true),
	)
	return err
}

// EnsureIndexes creates the unique indexes and seeds the id sequences at startup
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := []struct {
		collection string
		field      string
	}{
		{s.names.Users, "email"},
		{s.names.Users, "id"},
		{s.names.Posts, "id"},
		{s.names.Comments, "id"},
	}
	for _, u := range unique {
		_, err := s.collection(u.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: u.field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create %s.%s index: %w", u.collection, u.field, err)
		}
	}
	if _, err := s.collection(s.names.Comments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create comments.postId index: %w", err)
	}

	seeds := []struct {
		seq, collection, field string
	}{
		{SeqUsers, s.names.Users, "id"},
		{SeqPosts, s.names.Posts, "id"},
		{SeqComments, s.names.Comments, "id"},
		{SeqAnnouncements, s.names.Announcements, "id"},
		{SeqReports, s.names.Reports, "reportId"},
		{SeqCommentReports, s.names.CommentReports, "reportId"},
	}
	for _, seed := range seeds {
		if err := s.seedSequence(ctx, seed.seq, seed.collection, seed.field); err != nil {
			return fmt.Errorf("seed %s sequence: %w", seed.seq, err)
		}
	}
	log.Println("MongoDB indexes and id sequences ready.")
	return nil
}

// step is one write of a multi-document mutation together with the write that reverts it
type step struct {
	name string
	do   func(ctx context.Context) error
	undo func(ctx context.Context) error
}

// runSteps applies steps atomically: inside a transaction when enabled, otherwise in order with
// the completed steps undone in reverse when a later one fails.
func (s *Store) runSteps(ctx context.Context, steps ...step) error {
	if s.useTransactions {
		session, err := s.db.Client().StartSession()
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			for _, st := range steps {
				if err := st.do(sc); err != nil {
					return nil, fmt.Errorf("%s: %w", st.name, err)
				}
			}
			return nil, nil
		})
		return err
	}

	for i, st := range steps {
		if err := st.do(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				if steps[j].undo == nil {
					continue
				}
				if undoErr := steps[j].undo(ctx); undoErr != nil {
					log.Printf("undo %s after failed %s: %v", steps[j].name, st.name, undoErr)
				}
			}
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}
	return nil
}

// Stats holds the admin dashboard counters
type Stats struct {
	Posts    int64 `json:"posts"`
	Users    int64 `json:"users"`
	Comments int64 `json:"comments"`
	Reports  int64 `json:"reports"`
}

// Stats returns estimated document counts for the main collections
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	counts := []struct {
		collection string
		into       *int64
	}{
		{s.names.Posts, &stats.Posts},
		{s.names.Users, &stats.Users},
		{s.names.Comments, &stats.Comments},
		{s.names.Reports, &stats.Reports},
	}
	for _, c := range counts {
		n, err := s.collection(c.collection).EstimatedDocumentCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.collection, err)
		}
		*c.into = n
	}
	return &stats, nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// findAll runs a find and decodes every document, never returning a nil slice
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// aggregateAll runs a pipeline and decodes every document, never returning a nil slice
func aggregateAll[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
