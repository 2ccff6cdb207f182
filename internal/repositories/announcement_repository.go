package repositories

import (
	"context"
	"time"

	"github.com/anonto42/forum-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnnouncementRepository defines the interface for announcement data operations
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, ann *models.Announcement) error
	GetAnnouncements(ctx context.Context) ([]models.Announcement, error)
}

// MongoAnnouncementRepository implements AnnouncementRepository for MongoDB
type MongoAnnouncementRepository struct {
	store      *Store
	collection *mongo.Collection
}

// NewMongoAnnouncementRepository creates a new MongoAnnouncementRepository
func NewMongoAnnouncementRepository(store *Store) *MongoAnnouncementRepository {
	return &MongoAnnouncementRepository{store: store, collection: store.collection(store.names.Announcements)}
}

// CreateAnnouncement inserts an announcement under the next announcement id
func (r *MongoAnnouncementRepository) CreateAnnouncement(ctx context.Context, ann *models.Announcement) error {
	id, err := r.store.NextID(ctx, SeqAnnouncements)
	if err != nil {
		return err
	}
	ann.ID = id
	if ann.ObjectID.IsZero() {
		ann.ObjectID = primitive.NewObjectID()
	}
	if ann.CreatedAt.IsZero() {
		ann.CreatedAt = time.Now()
	}
	_, err = r.collection.InsertOne(ctx, ann)
	return err
}

// GetAnnouncements lists announcements, newest id first
func (r *MongoAnnouncementRepository) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return findAll[models.Announcement](ctx, r.collection, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: -1}}))
}
