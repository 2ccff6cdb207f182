package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is an admin notice shown on the forum front page
type Announcement struct {
	ObjectID      primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ID            int64              `json:"id" bson:"id"`
	AdminID       int64              `json:"adminId" bson:"adminId"`
	Title         string             `json:"title" bson:"title"`
	Announcements string             `json:"announcements" bson:"announcements"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

type CreateAnnouncementRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Announcements string `json:"announcements" validate:"required"`
	Image         string `json:"image,omitempty" validate:"omitempty,url"`
}
