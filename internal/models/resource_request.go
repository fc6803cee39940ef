package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ResourceQuery struct {
	Subject string `bson:"subject" json:"subject"`
	Year    string `bson:"year,omitempty" json:"year,omitempty"`
	Session string `bson:"session,omitempty" json:"session,omitempty"`
	Paper   string `bson:"paper,omitempty" json:"paper,omitempty"`
}

type ResourceLink struct {
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
}

// ResourceRequest is the append-only audit trail of past-paper searches.
type ResourceRequest struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  string             `bson:"user_id" json:"user_id"`
	Query   ResourceQuery      `bson:"query" json:"query"`
	Results []ResourceLink     `bson:"results" json:"results"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
