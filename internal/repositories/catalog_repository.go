package repositories

import (
	"context"

	"github.com/anonto42/forum-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository reads the static category and tag lists
type CatalogRepository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
}

type MongoCatalogRepository struct {
	categories *mongo.Collection
	tags       *mongo.Collection
}

func NewMongoCatalogRepository(store *Store) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		categories: store.collection(store.names.Category),
		tags:       store.collection(store.names.Tags),
	}
}

func (r *MongoCatalogRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.categories, bson.D{})
}

func (r *MongoCatalogRepository) GetTags(ctx context.Context) ([]models.Tag, error) {
	return findAll[models.Tag](ctx, r.tags, bson.D{})
}
