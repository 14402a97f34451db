package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"palaver/internal/domain"
	"palaver/internal/identity"
	"palaver/internal/repository"
	palaver_errors "palaver/pkg/errors"
	"palaver/pkg/events"
	"palaver/pkg/logger"
)

// MessageService validates and persists new messages and announces
// them on the NewMessage stream.
type MessageService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	stream      events.Stream[domain.Message]
	log         *logger.Logger
}

func NewMessageService(userRepo repository.UserRepository, messageRepo repository.MessageRepository, stream events.Stream[domain.Message], log *logger.Logger) *MessageService {
	return &MessageService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		stream:      stream,
		log:         log,
	}
}

// SendMessage checks, in order: authentication, recipient existence,
// self-messaging, blank content. The first failure wins and nothing
// is written until all checks pass. The store write happens before
// the publish.
func (s *MessageService) SendMessage(ctx context.Context, to, content string) (domain.Message, error) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		return domain.Message{}, palaver_errors.Unauthenticated("not authenticated")
	}

	recipient, err := s.userRepo.GetByUsername(ctx, to)
	if err != nil {
		if palaver_errors.KindOf(err) == palaver_errors.KindNotFound {
			return domain.Message{}, palaver_errors.NotFound("this user does not exist")
		}
		return domain.Message{}, err
	}

	if recipient.Username == caller.Username {
		return domain.Message{}, palaver_errors.InvalidArgument("you cannot message yourself")
	}

	// Blankness is judged on the trimmed content, but the stored
	// content is the original string, surrounding whitespace and all.
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, palaver_errors.InvalidArgument("message is empty")
	}

	message := domain.Message{
		UUID:    uuid.New().String(),
		From:    caller.Username,
		To:      recipient.Username,
		Content: content,
	}
	if err := s.messageRepo.Create(ctx, &message); err != nil {
		return domain.Message{}, err
	}

	s.stream.Publish(ctx, message)
	s.log.Info(ctx, "message sent",
		zap.String("uuid", message.UUID),
		zap.String("to", message.To),
	)
	return message, nil
}
