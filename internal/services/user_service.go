package services

import (
	"context"

	"palaver/internal/domain"
	"palaver/internal/identity"
	"palaver/internal/repository"
	palaver_errors "palaver/pkg/errors"
)

// UserService lists the directory for the caller's contact view.
type UserService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewUserService(userRepo repository.UserRepository, messageRepo repository.MessageRepository) *UserService {
	return &UserService{userRepo: userRepo, messageRepo: messageRepo}
}

// GetUsers returns every other user, each decorated with the most
// recent message between the caller and that user, if any.
func (s *UserService) GetUsers(ctx context.Context) ([]domain.User, error) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		return nil, palaver_errors.Unauthenticated("not authenticated")
	}

	users, err := s.userRepo.GetAllExcept(ctx, caller.Username)
	if err != nil {
		return nil, err
	}

	// One query for the caller's whole history, newest first; the
	// first hit per user is their latest message.
	history, err := s.messageRepo.GetInvolving(ctx, caller.Username)
	if err != nil {
		return nil, err
	}

	for i := range users {
		for _, message := range history {
			if message.Participant(users[i].Username) {
				latest := message
				users[i].LatestMessage = &latest
				break
			}
		}
	}
	return users, nil
}
