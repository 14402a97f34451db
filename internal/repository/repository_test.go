package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"palaver/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Message{}, &domain.Reaction{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) domain.User {
	t.Helper()
	u := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createMessage(t *testing.T, db *gorm.DB, from, to, content string, at time.Time) domain.Message {
	t.Helper()
	m := domain.Message{
		UUID:      fmt.Sprintf("%s-%s-%d", from, to, at.UnixNano()),
		From:      from,
		To:        to,
		Content:   content,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestGetConversationBothDirectionsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := createMessage(t, db, "alice", "bob", "hi", base)
	second := createMessage(t, db, "bob", "alice", "hey", base.Add(time.Minute))
	createMessage(t, db, "alice", "carol", "other", base.Add(2*time.Minute))

	messages, err := repo.GetConversation(context.Background(), "alice", "bob")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, second.UUID, messages[0].UUID)
	require.Equal(t, first.UUID, messages[1].UUID)
}

func TestGetConversationAttachesReactions(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	alice := createUser(t, db, "alice")
	m := createMessage(t, db, "alice", "bob", "hi", time.Now())
	require.NoError(t, db.Create(&domain.Reaction{MessageID: m.ID, UserID: alice.ID, Content: "👍"}).Error)

	messages, err := repo.GetConversation(context.Background(), "alice", "bob")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Reactions, 1)
	require.Equal(t, "👍", messages[0].Reactions[0].Content)
}

func TestReactionUpsertOverwritesInPlace(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)

	alice := createUser(t, db, "alice")
	m := createMessage(t, db, "alice", "bob", "hi", time.Now())

	first, err := repo.Upsert(context.Background(), &domain.Reaction{
		MessageID: m.ID, UserID: alice.ID, Content: "❤️",
	})
	require.NoError(t, err)

	second, err := repo.Upsert(context.Background(), &domain.Reaction{
		MessageID: m.ID, UserID: alice.ID, Content: "😡",
	})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID, "upsert must keep the row identity")
	require.Equal(t, "😡", second.Content)

	var count int64
	require.NoError(t, db.Model(&domain.Reaction{}).
		Where("message_id = ? AND user_id = ?", m.ID, alice.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count, "exactly one reaction row per (message, user)")
}

func TestReactionUpsertDistinctUsersKeepSeparateRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	m := createMessage(t, db, "alice", "bob", "hi", time.Now())

	_, err := repo.Upsert(context.Background(), &domain.Reaction{MessageID: m.ID, UserID: alice.ID, Content: "👍"})
	require.NoError(t, err)
	_, err = repo.Upsert(context.Background(), &domain.Reaction{MessageID: m.ID, UserID: bob.ID, Content: "👎"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Reaction{}).Where("message_id = ?", m.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestUserUniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, db, "alice")

	err := repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "x",
	})
	require.Error(t, err)
}

func TestGetInvolvingNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createMessage(t, db, "alice", "bob", "one", base)
	latest := createMessage(t, db, "carol", "alice", "two", base.Add(time.Hour))
	createMessage(t, db, "bob", "carol", "not alice", base.Add(2*time.Hour))

	messages, err := repo.GetInvolving(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, latest.UUID, messages[0].UUID)
}
