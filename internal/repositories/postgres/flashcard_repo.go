package postgres

import (
	"context"

	"github.com/avelyx/prepmate/internal/models"
	"gorm.io/gorm"
)

type FlashcardRepo interface {
	InsertBatch(ctx context.Context, cards []models.Flashcard) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Flashcard, error)
}

type flashcardRepo struct {
	db *gorm.DB
}

func NewFlashcardRepo(db *gorm.DB) FlashcardRepo {
	return &flashcardRepo{db: db}
}

func (r *flashcardRepo) InsertBatch(ctx context.Context, cards []models.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cards).Error
}

func (r *flashcardRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Flashcard, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.Flashcard
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
