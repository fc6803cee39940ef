package mongo

import (
	"context"
	"time"

	"github.com/avelyx/prepmate/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResourceRequestRepo interface {
	Insert(ctx context.Context, r *models.ResourceRequest) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.ResourceRequest, error)
}

type resourceRequestRepo struct {
	col *mongo.Collection
}

func NewResourceRequestRepo(db *mongo.Database) ResourceRequestRepo {
	return &resourceRequestRepo{col: db.Collection("resource_requests")}
}

func (r *resourceRequestRepo) Insert(ctx context.Context, req *models.ResourceRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, req)
	return err
}

func (r *resourceRequestRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.ResourceRequest, error) {
	if limit <= 0 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ResourceRequest
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
