package repositories

import (
	"context"
	"time"

	"github.com/anonto42/forum-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportRepository defines the interface for post and comment reports
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) error
	CreateCommentReport(ctx context.Context, report *models.CommentReport) error
	GetReports(ctx context.Context) ([]models.Report, error)
	GetCommentReports(ctx context.Context) ([]models.CommentReport, error)
}

// MongoReportRepository implements ReportRepository for MongoDB
type MongoReportRepository struct {
	store          *Store
	reports        *mongo.Collection
	commentReports *mongo.Collection
}

// NewMongoReportRepository creates a new MongoReportRepository
func NewMongoReportRepository(store *Store) *MongoReportRepository {
	return &MongoReportRepository{
		store:          store,
		reports:        store.collection(store.names.Reports),
		commentReports: store.collection(store.names.CommentReports),
	}
}

func (r *MongoReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	id, err := r.store.NextID(ctx, SeqReports)
	if err != nil {
		return err
	}
	report.ReportID = id
	if report.ObjectID.IsZero() {
		report.ObjectID = primitive.NewObjectID()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	_, err = r.reports.InsertOne(ctx, report)
	return err
}

func (r *MongoReportRepository) CreateCommentReport(ctx context.Context, report *models.CommentReport) error {
	id, err := r.store.NextID(ctx, SeqCommentReports)
	if err != nil {
		return err
	}
	report.ReportID = id
	if report.ObjectID.IsZero() {
		report.ObjectID = primitive.NewObjectID()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	_, err = r.commentReports.InsertOne(ctx, report)
	return err
}

func (r *MongoReportRepository) GetReports(ctx context.Context) ([]models.Report, error) {
	return findAll[models.Report](ctx, r.reports, bson.D{})
}

func (r *MongoReportRepository) GetCommentReports(ctx context.Context) ([]models.CommentReport, error) {
	return findAll[models.CommentReport](ctx, r.commentReports, bson.D{})
}
