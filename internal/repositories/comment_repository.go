package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/forum-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	GetAllComments(ctx context.Context) ([]models.Comment, error)
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	store      *Store
	collection *mongo.Collection
	posts      *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(store *Store) *MongoCommentRepository {
	return &MongoCommentRepository{
		store:      store,
		collection: store.collection(store.names.Comments),
		posts:      store.collection(store.names.Posts),
	}
}

// GetAllComments retrieves every comment
func (r *MongoCommentRepository) GetAllComments(ctx context.Context) ([]models.Comment, error) {
	return findAll[models.Comment](ctx, r.collection, bson.D{})
}

// GetCommentByID retrieves a comment by its integer id
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// CreateComment inserts the comment and appends its id to the post's comments
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	id, err := r.store.NextID(ctx, SeqComments)
	if err != nil {
		return err
	}
	comment.ID = id
	if comment.ObjectID.IsZero() {
		comment.ObjectID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	return r.store.runSteps(ctx,
		step{
			name: "link comment to post",
			do: func(ctx context.Context) error {
				res, err := r.posts.UpdateOne(ctx, bson.M{"id": comment.PostID}, bson.M{"$push": bson.M{"comments": comment.ID}})
				if err != nil {
					return err
				}
				if res.MatchedCount == 0 {
					return ErrNotFound
				}
				return nil
			},
			undo: func(ctx context.Context) error {
				_, err := r.posts.UpdateOne(ctx, bson.M{"id": comment.PostID}, bson.M{"$pull": bson.M{"comments": comment.ID}})
				return err
			},
		},
		step{
			name: "insert comment",
			do: func(ctx context.Context) error {
				_, err := r.collection.InsertOne(ctx, comment)
				return err
			},
		},
	)
}

// DeleteComment removes the comment id from its post and deletes the comment
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id int64) error {
	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	return r.store.runSteps(ctx,
		step{
			name: "unlink comment from post",
			do: func(ctx context.Context) error {
				_, err := r.posts.UpdateOne(ctx, bson.M{"id": comment.PostID}, bson.M{"$pull": bson.M{"comments": comment.ID}})
				return err
			},
			undo: func(ctx context.Context) error {
				_, err := r.posts.UpdateOne(ctx, bson.M{"id": comment.PostID}, bson.M{"$addToSet": bson.M{"comments": comment.ID}})
				return err
			},
		},
		step{
			name: "delete comment",
			do: func(ctx context.Context) error {
				res, err := r.collection.DeleteOne(ctx, bson.M{"id": comment.ID})
				if err != nil {
					return err
				}
				if res.DeletedCount == 0 {
					return ErrNotFound
				}
				return nil
			},
		},
	)
}
