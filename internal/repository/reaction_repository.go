package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"palaver/internal/domain"
)

type PostgresReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// Upsert leans on the (message_id, user_id) unique index: concurrent
// reactions from the same user on the same message can never produce
// a duplicate row, whichever write lands first.
func (r *PostgresReactionRepository) Upsert(ctx context.Context, reaction *domain.Reaction) (domain.Reaction, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"content":    reaction.Content,
				"updated_at": time.Now(),
			}),
		}).
		Create(reaction).Error
	if err != nil {
		return domain.Reaction{}, err
	}

	// The conflict path keeps the original row identity; re-read the
	// canonical row rather than trusting the insert struct.
	var saved domain.Reaction
	err = r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", reaction.MessageID, reaction.UserID).
		First(&saved).Error
	if err != nil {
		return domain.Reaction{}, err
	}
	return saved, nil
}
