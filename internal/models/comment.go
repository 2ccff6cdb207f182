package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post
type Comment struct {
	ObjectID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ID             int64              `json:"id" bson:"id"`
	PostID         int64              `json:"postId" bson:"postId"`
	CommenterEmail string             `json:"commenterEmail" bson:"commenterEmail"`
	CommenterName  string             `json:"commenterName,omitempty" bson:"commenterName,omitempty"`
	Comment        string             `json:"comment" bson:"comment"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID        int64  `json:"postId" validate:"required,gt=0"`
	CommenterName string `json:"commenterName,omitempty" validate:"omitempty,max=80"`
	Comment       string `json:"comment" validate:"required,min=1,max=1000"`
}
