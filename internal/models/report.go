package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report flags a post or its author
type Report struct {
	ObjectID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ReportID       int64              `json:"reportId" bson:"reportId"`
	ReporterEmail  string             `json:"reporterEmail" bson:"reporterEmail"`
	ReportedUserID int64              `json:"reportedUserId" bson:"reportedUserId"`
	PostID         int64              `json:"postId" bson:"postId"`
	Details        string             `json:"details" bson:"details"`
	Option         string             `json:"option" bson:"option"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// CommentReport flags a single comment
type CommentReport struct {
	ObjectID      primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ReportID      int64              `json:"reportId" bson:"reportId"`
	ReporterEmail string             `json:"reporterEmail" bson:"reporterEmail"`
	CommentID     int64              `json:"commentId" bson:"commentId"`
	PostID        int64              `json:"postId" bson:"postId"`
	Details       string             `json:"details" bson:"details"`
	Option        string             `json:"option" bson:"option"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

type CreateReportRequest struct {
	ReportedUserID int64  `json:"reportedUserId" validate:"required,gt=0"`
	PostID         int64  `json:"postId" validate:"required,gt=0"`
	Details        string `json:"details" validate:"max=2000"`
	Option         string `json:"option" validate:"required"`
}

type CreateCommentReportRequest struct {
	CommentID int64  `json:"commentId" validate:"required,gt=0"`
	PostID    int64  `json:"postId" validate:"required,gt=0"`
	Details   string `json:"details" validate:"max=2000"`
	Option    string `json:"option" validate:"required"`
}
