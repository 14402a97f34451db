package repository

import (
	"context"

	"palaver/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uint) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	// GetAllExcept lists every user other than username, newest first.
	GetAllExcept(ctx context.Context, username string) ([]domain.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id uint) (domain.Message, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Message, error)
	// GetConversation returns all messages whose {from, to} pair is
	// {userA, userB} in either direction, newest first, reactions
	// attached.
	GetConversation(ctx context.Context, userA, userB string) ([]domain.Message, error)
	// GetInvolving returns every message username sent or received,
	// newest first.
	GetInvolving(ctx context.Context, username string) ([]domain.Message, error)
}

type ReactionRepository interface {
	// Upsert creates the reaction, or overwrites the content of the
	// existing row for the same (message, user) pair. The returned
	// reaction is the canonical stored row.
	Upsert(ctx context.Context, reaction *domain.Reaction) (domain.Reaction, error)
}
