package services

import (
	"context"

	"go.uber.org/zap"

	"palaver/internal/domain"
	"palaver/internal/identity"
	"palaver/internal/repository"
	palaver_errors "palaver/pkg/errors"
	"palaver/pkg/events"
	"palaver/pkg/logger"
)

// ReactionService upserts one emoji reaction per (message, user)
// pair and announces the result on the NewReaction stream.
type ReactionService struct {
	messageRepo  repository.MessageRepository
	reactionRepo repository.ReactionRepository
	stream       events.Stream[domain.Reaction]
	log          *logger.Logger
}

func NewReactionService(messageRepo repository.MessageRepository, reactionRepo repository.ReactionRepository, stream events.Stream[domain.Reaction], log *logger.Logger) *ReactionService {
	return &ReactionService{
		messageRepo:  messageRepo,
		reactionRepo: reactionRepo,
		stream:       stream,
		log:          log,
	}
}

// ReactToMessage checks, in order: reaction content, authentication,
// message existence, participation. Reacting again overwrites the
// existing row's content instead of adding a second row.
func (s *ReactionService) ReactToMessage(ctx context.Context, messageUUID, content string) (domain.Reaction, error) {
	if !domain.ValidReaction(content) {
		return domain.Reaction{}, palaver_errors.InvalidArgument("invalid reaction")
	}

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return domain.Reaction{}, palaver_errors.Unauthenticated("not authenticated")
	}

	message, err := s.messageRepo.GetByUUID(ctx, messageUUID)
	if err != nil {
		if palaver_errors.KindOf(err) == palaver_errors.KindNotFound {
			return domain.Reaction{}, palaver_errors.NotFound("message not found")
		}
		return domain.Reaction{}, err
	}

	if !message.Participant(caller.Username) {
		return domain.Reaction{}, palaver_errors.Forbidden("unauthorized")
	}

	reaction, err := s.reactionRepo.Upsert(ctx, &domain.Reaction{
		MessageID: message.ID,
		UserID:    caller.UserID,
		Content:   content,
	})
	if err != nil {
		return domain.Reaction{}, err
	}

	s.stream.Publish(ctx, reaction)
	s.log.Info(ctx, "message reaction",
		zap.String("uuid", message.UUID),
		zap.String("content", content),
	)
	return reaction, nil
}
