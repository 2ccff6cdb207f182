package repositories

import (
	"context"

	"github.com/anonto42/forum-server/internal/feed"
	"github.com/anonto42/forum-server/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// FeedRepository runs the post/author/comment join queries
type FeedRepository interface {
	MergedFeed(ctx context.Context, q feed.Query) ([]models.FeedPost, error)
	PostsByVotes(ctx context.Context, sort feed.VoteSort) ([]models.FeedPost, error)
	PostsByAuthor(ctx context.Context, authorID int64) ([]models.FeedPost, error)
}

// MongoFeedRepository implements FeedRepository with aggregation pipelines over the posts collection
type MongoFeedRepository struct {
	posts    *mongo.Collection
	joined   feed.Collections
	settings feed.Settings
}

// NewMongoFeedRepository creates a new MongoFeedRepository
func NewMongoFeedRepository(store *Store, settings feed.Settings) *MongoFeedRepository {
	return &MongoFeedRepository{
		posts:    store.collection(store.names.Posts),
		joined:   feed.Collections{Users: store.names.Users, Comments: store.names.Comments},
		settings: settings,
	}
}

// MergedFeed returns the posts selected by the resolved query mode
func (r *MongoFeedRepository) MergedFeed(ctx context.Context, q feed.Query) ([]models.FeedPost, error) {
	return aggregateAll[models.FeedPost](ctx, r.posts, r.settings.Pipeline(r.joined, q))
}

// PostsByVotes returns every post ordered by its derived vote total
func (r *MongoFeedRepository) PostsByVotes(ctx context.Context, sort feed.VoteSort) ([]models.FeedPost, error) {
	return aggregateAll[models.FeedPost](ctx, r.posts, feed.PopularityPipeline(r.joined, sort, r.settings.CommentLimit))
}

// PostsByAuthor returns one author's posts joined like the merged feed
func (r *MongoFeedRepository) PostsByAuthor(ctx context.Context, authorID int64) ([]models.FeedPost, error) {
	return aggregateAll[models.FeedPost](ctx, r.posts, feed.AuthorPipeline(r.joined, authorID, r.settings.CommentLimit))
}
