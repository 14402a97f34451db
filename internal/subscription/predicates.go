package subscription

import (
	"context"

	"palaver/internal/domain"
	"palaver/internal/identity"
	"palaver/internal/repository"
)

// MessageParticipant delivers a message only to its two participants.
// Pure: no store access per event.
func MessageParticipant() Predicate[domain.Message] {
	return func(_ context.Context, subscriber identity.Identity, message domain.Message) (bool, error) {
		return message.Participant(subscriber.Username), nil
	}
}

// ReactionParticipant delivers a reaction only to the participants of
// its owning message. The owning message differs per event, so the
// lookup runs per event.
func ReactionParticipant(messages repository.MessageRepository) Predicate[domain.Reaction] {
	return func(ctx context.Context, subscriber identity.Identity, reaction domain.Reaction) (bool, error) {
		message, err := messages.GetByID(ctx, reaction.MessageID)
		if err != nil {
			return false, err
		}
		return message.Participant(subscriber.Username), nil
	}
}
