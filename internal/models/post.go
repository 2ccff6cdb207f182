package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a forum post stored in MongoDB
type Post struct {
	ObjectID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ID          int64              `json:"id" bson:"id"`
	AuthorID    int64              `json:"authorId" bson:"authorId"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Tags        []string           `json:"tags" bson:"tags"`
	UpVotes     int64              `json:"upVotes" bson:"upVotes"`
	DownVotes   int64              `json:"downVotes" bson:"downVotes"`
	Comments    []int64            `json:"comments" bson:"comments"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// FeedPost is a post joined with its author and a page of its comments
type FeedPost struct {
	Post        `bson:",inline"`
	Author      User      `json:"author" bson:"author"`
	CommentData []Comment `json:"commentData" bson:"commentData"`
	TotalVotes  *int64    `json:"totalVotes,omitempty" bson:"totalVotes,omitempty"`
}

// CreatePostRequest defines the request body for creating a new post. The author is always the
// signed-in user; a supplied authorId must name that same user.
type CreatePostRequest struct {
	AuthorID    int64    `json:"authorId,omitempty" validate:"omitempty,gt=0"`
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,min=1,max=5000"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// Vote directions accepted by PATCH /updateLikes
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// VoteRequest defines the request body for voting on a post
type VoteRequest struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Vote string `json:"vote" validate:"required,oneof=up down"`
}
