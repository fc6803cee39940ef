package postgres

import (
	"context"
	"errors"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/utils"
	"gorm.io/gorm"
)

type QuizRepo interface {
	Insert(ctx context.Context, q *models.Quiz) error
	GetOwned(ctx context.Context, id, userID string) (*models.Quiz, error)
	InsertAttempt(ctx context.Context, a *models.QuizAttempt) error
	ListRecentAttempts(ctx context.Context, userID string, limit int) ([]models.QuizAttempt, error)
}

type quizRepo struct {
	db *gorm.DB
}

func NewQuizRepo(db *gorm.DB) QuizRepo {
	return &quizRepo{db: db}
}

func (r *quizRepo) Insert(ctx context.Context, q *models.Quiz) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *quizRepo) GetOwned(ctx context.Context, id, userID string) (*models.Quiz, error) {
	var row models.Quiz
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *quizRepo) InsertAttempt(ctx context.Context, a *models.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *quizRepo) ListRecentAttempts(ctx context.Context, userID string, limit int) ([]models.QuizAttempt, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
