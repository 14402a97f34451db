package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"palaver/config"
	"palaver/internal/domain"
	"palaver/internal/identity"
	"palaver/internal/repository"
	palaver_errors "palaver/pkg/errors"
)

// AuthService is the user directory and authentication provider: it
// registers accounts, trades credentials for tokens and resolves
// tokens back into identities.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginResult struct {
	User  domain.User
	Token string
}

type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Register validates every field before touching the store and
// returns all violations at once rather than the first one found.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	violations := palaver_errors.Violations{}
	if strings.TrimSpace(in.Email) == "" {
		violations.Add("email", "email must not be empty")
	}
	if strings.TrimSpace(in.Username) == "" {
		violations.Add("username", "username must not be empty")
	}
	if strings.TrimSpace(in.Password) == "" {
		violations.Add("password", "password must not be empty")
	}
	if strings.TrimSpace(in.ConfirmPassword) == "" {
		violations.Add("confirmPassword", "password must not be empty")
	}
	if in.Password != in.ConfirmPassword {
		violations.Add("confirmPassword", "passwords do not match")
	}
	if err := violations.AsError("bad input"); err != nil {
		return domain.User{}, err
	}

	if err := s.ensureIdentityAvailable(ctx, in, violations); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ensureIdentityAvailable pre-checks uniqueness so taken usernames
// and emails surface as field violations. A racing duplicate still
// hits the unique constraint and fails the create.
func (s *AuthService) ensureIdentityAvailable(ctx context.Context, in RegisterInput, violations palaver_errors.Violations) error {
	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		violations.Add("username", "username is taken")
	} else if palaver_errors.KindOf(err) != palaver_errors.KindNotFound {
		return err
	}
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		violations.Add("email", "email is taken")
	} else if palaver_errors.KindOf(err) != palaver_errors.KindNotFound {
		return err
	}
	return violations.AsError("bad input")
}

func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	violations := palaver_errors.Violations{}
	if strings.TrimSpace(username) == "" {
		violations.Add("username", "username must not be empty")
	}
	if password == "" {
		violations.Add("password", "password must not be empty")
	}
	if err := violations.AsError("bad input"); err != nil {
		return LoginResult{}, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if palaver_errors.KindOf(err) == palaver_errors.KindNotFound {
			return LoginResult{}, palaver_errors.InvalidArgument("this user does not exist").
				WithFields(map[string]string{"username": "this user does not exist"})
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, palaver_errors.InvalidArgument("incorrect password").
			WithFields(map[string]string{"password": "incorrect password"})
	}

	token, err := s.signToken(user.Username)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, Token: token}, nil
}

func (s *AuthService) signToken(username string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// VerifyToken resolves a bearer token into a caller identity. Any
// parse, signature or lookup failure yields an absent identity, never
// an error; operations gate on absence themselves.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (identity.Identity, bool) {
	if tokenString == "" {
		return identity.Identity{}, false
	}

	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return identity.Identity{}, false
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Username)
	if err != nil {
		return identity.Identity{}, false
	}
	return identity.Identity{UserID: user.ID, Username: user.Username}, true
}
