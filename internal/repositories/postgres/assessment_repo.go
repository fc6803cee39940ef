package postgres

import (
	"context"

	"github.com/avelyx/prepmate/internal/models"
	"gorm.io/gorm"
)

type AssessmentRepo interface {
	Insert(ctx context.Context, a *models.Assessment) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Assessment, error)
}

type assessmentRepo struct {
	db *gorm.DB
}

func NewAssessmentRepo(db *gorm.DB) AssessmentRepo {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) Insert(ctx context.Context, a *models.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assessmentRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.Assessment, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.Assessment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
