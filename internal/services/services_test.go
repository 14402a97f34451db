package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"palaver/config"
	"palaver/internal/domain"
	"palaver/internal/identity"
	"palaver/internal/repository"
	"palaver/pkg/logger"
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

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 60,
	}
}

type env struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	messageRepo  repository.MessageRepository
	reactionRepo repository.ReactionRepository
	log          *logger.Logger
}

func newEnv(t *testing.T) *env {
	db := newTestDB(t)
	return &env{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		messageRepo:  repository.NewMessageRepository(db),
		reactionRepo: repository.NewReactionRepository(db),
		log:          logger.Nop(),
	}
}

func (e *env) createUser(t *testing.T, username string) domain.User {
	t.Helper()
	u := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, e.db.Create(&u).Error)
	return u
}

func (e *env) createMessage(t *testing.T, from, to, content string, at time.Time) domain.Message {
	t.Helper()
	m := domain.Message{
		UUID:      fmt.Sprintf("%s-%s-%d", from, to, at.UnixNano()),
		From:      from,
		To:        to,
		Content:   content,
		CreatedAt: at,
	}
	require.NoError(t, e.db.Create(&m).Error)
	return m
}

func as(u domain.User) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{
		UserID:   u.ID,
		Username: u.Username,
	})
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed before a value arrived")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		panic("unreachable")
	}
}

func expectNone[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected event: %+v", v)
	case <-time.After(100 * time.Millisecond):
	}
}
