package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"palaver/internal/domain"
	palaver_errors "palaver/pkg/errors"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uint) (domain.Message, error) {
	var m domain.Message
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Message{}, palaver_errors.NotFound("message not found")
		}
		return domain.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) GetByUUID(ctx context.Context, uuid string) (domain.Message, error) {
	var m domain.Message
	err := r.db.WithContext(ctx).
		Where("uuid = ?", uuid).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Message{}, palaver_errors.NotFound("message not found")
		}
		return domain.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) GetConversation(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	usernames := []string{userA, userB}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("from_user IN ? AND to_user IN ?", usernames, usernames).
		Order("created_at DESC").
		Preload("Reactions").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) GetInvolving(ctx context.Context, username string) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("from_user = ? OR to_user = ?", username, username).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
