package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/forum-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	IncrementVote(ctx context.Context, id int64, vote string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	store      *Store
	collection *mongo.Collection
	users      *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(store *Store) *MongoPostRepository {
	return &MongoPostRepository{
		store:      store,
		collection: store.collection(store.names.Posts),
		users:      store.collection(store.names.Users),
	}
}

// GetAllPosts retrieves every post in store order
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return findAll[models.Post](ctx, r.collection, bson.D{})
}

// GetPostByID retrieves a post by its integer id
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost inserts the post under the next post id and records the id on its author.
// The author must exist.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	id, err := r.store.NextID(ctx, SeqPosts)
	if err != nil {
		return err
	}
	post.ID = id
	if post.ObjectID.IsZero() {
		post.ObjectID = primitive.NewObjectID()
	}
	post.UpVotes, post.DownVotes = 0, 0
	post.Comments = []int64{}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	return r.store.runSteps(ctx,
		step{
			name: "insert post",
			do: func(ctx context.Context) error {
				_, err := r.collection.InsertOne(ctx, post)
				return err
			},
			undo: func(ctx context.Context) error {
				_, err := r.collection.DeleteOne(ctx, bson.M{"id": post.ID})
				return err
			},
		},
		step{
			name: "link post to author",
			do: func(ctx context.Context) error {
				res, err := r.users.UpdateOne(ctx, bson.M{"id": post.AuthorID}, bson.M{"$push": bson.M{"posts": post.ID}})
				if err != nil {
					return err
				}
				if res.MatchedCount == 0 {
					return ErrNotFound
				}
				return nil
			},
		},
	)
}

// IncrementVote adds exactly one to the post's upVotes or downVotes
func (r *MongoPostRepository) IncrementVote(ctx context.Context, id int64, vote string) error {
	update, err := voteUpdate(vote)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func voteUpdate(vote string) (bson.M, error) {
	switch vote {
	case models.VoteUp:
		return bson.M{"$inc": bson.M{"upVotes": int64(1)}}, nil
	case models.VoteDown:
		return bson.M{"$inc": bson.M{"downVotes": int64(1)}}, nil
	}
	return nil, fmt.Errorf("unknown vote %q", vote)
}
