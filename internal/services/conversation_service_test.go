package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	palaver_errors "palaver/pkg/errors"
)

func TestGetMessagesVisibleFromBothEnds(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	svc := NewConversationService(e.userRepo, e.messageRepo)

	m := e.createMessage(t, "alice", "bob", "hi", time.Now())

	fromAlice, err := svc.GetMessages(as(alice), "bob")
	require.NoError(t, err)
	require.Len(t, fromAlice, 1)
	assert.Equal(t, m.UUID, fromAlice[0].UUID)

	fromBob, err := svc.GetMessages(as(bob), "alice")
	require.NoError(t, err)
	require.Len(t, fromBob, 1)
	assert.Equal(t, m.UUID, fromBob[0].UUID)
}

func TestGetMessagesExcludesThirdParties(t *testing.T) {
	e := newEnv(t)
	e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	carol := e.createUser(t, "carol")
	svc := NewConversationService(e.userRepo, e.messageRepo)

	e.createMessage(t, "alice", "bob", "private", time.Now())

	visible, err := svc.GetMessages(as(carol), "alice")
	require.NoError(t, err)
	assert.Empty(t, visible)

	visible, err = svc.GetMessages(as(carol), "bob")
	require.NoError(t, err)
	assert.Empty(t, visible)

	// And bob's view of carol is empty too.
	visible, err = svc.GetMessages(as(bob), "carol")
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestGetMessagesNewestFirstAcrossInterleavedSenders(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")
	e.createUser(t, "bob")
	svc := NewConversationService(e.userRepo, e.messageRepo)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := e.createMessage(t, "alice", "bob", "one", base)
	newest := e.createMessage(t, "alice", "bob", "three", base.Add(2*time.Minute))
	middle := e.createMessage(t, "bob", "alice", "two", base.Add(time.Minute))

	messages, err := svc.GetMessages(as(alice), "bob")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, newest.UUID, messages[0].UUID)
	assert.Equal(t, middle.UUID, messages[1].UUID)
	assert.Equal(t, oldest.UUID, messages[2].UUID)
}

func TestGetMessagesUnknownPeer(t *testing.T) {
	e := newEnv(t)
	alice := e.createUser(t, "alice")
	svc := NewConversationService(e.userRepo, e.messageRepo)

	_, err := svc.GetMessages(as(alice), "nobody")
	require.Error(t, err)
	assert.Equal(t, palaver_errors.KindNotFound, palaver_errors.KindOf(err))
	assert.Equal(t, "this user does not exist", err.Error())
}

func TestGetMessagesRequiresAuthentication(t *testing.T) {
	e := newEnv(t)
	e.createUser(t, "bob")
	svc := NewConversationService(e.userRepo, e.messageRepo)

	_, err := svc.GetMessages(context.Background(), "bob")
	require.Error(t, err)
	assert.Equal(t, palaver_errors.KindUnauthenticated, palaver_errors.KindOf(err))
}
