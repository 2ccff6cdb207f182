package models

import "go.mongodb.org/mongo-driver/bson"

// Category and tag documents are static reference data; they are passed through as stored.
type (
	Category = bson.M
	Tag      = bson.M
)
