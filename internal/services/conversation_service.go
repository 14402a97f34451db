package services

import (
	"context"

	"palaver/internal/domain"
	"palaver/internal/identity"
	"palaver/internal/repository"
	palaver_errors "palaver/pkg/errors"
)

// ConversationService retrieves the message history between the
// caller and one peer. Read-only.
type ConversationService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewConversationService(userRepo repository.UserRepository, messageRepo repository.MessageRepository) *ConversationService {
	return &ConversationService{userRepo: userRepo, messageRepo: messageRepo}
}

// GetMessages returns every message between the caller and
// peerUsername, in either direction, newest first, each with its
// reactions attached. The full history is returned; there is no
// pagination bound at this layer.
func (s *ConversationService) GetMessages(ctx context.Context, peerUsername string) ([]domain.Message, error) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		return nil, palaver_errors.Unauthenticated("not authenticated")
	}

	peer, err := s.userRepo.GetByUsername(ctx, peerUsername)
	if err != nil {
		if palaver_errors.KindOf(err) == palaver_errors.KindNotFound {
			return nil, palaver_errors.NotFound("this user does not exist")
		}
		return nil, err
	}

	return s.messageRepo.GetConversation(ctx, caller.Username, peer.Username)
}
