package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
	repo "github.com/oksasatya/saas-landing-api/internal/domain/repository"
	"github.com/oksasatya/saas-landing-api/pkg/helpers"
	"github.com/oksasatya/saas-landing-api/pkg/mailer"
	tpl "github.com/oksasatya/saas-landing-api/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
)

type AuthService struct {
	Store   repo.DocumentStore
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Jobs    JobPublisher
	Logger  *logrus.Logger
	AppName string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// SessionKey is the Redis hash holding a user's current session.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewAuthService(store repo.DocumentStore, jwt *helpers.JWTManager, rdb *redis.Client, jobs JobPublisher, logger *logrus.Logger, appName string) *AuthService {
	return &AuthService{
		Store:   store,
		JWT:     jwt,
		Redis:   rdb,
		Jobs:    jobs,
		Logger:  orStandard(logger),
		AppName: appName,
	}
}

// Signup stores a new user and queues the welcome email.
func (s *AuthService) Signup(ctx context.Context, in SignupInput, meta RequestMeta) (string, error) {
	if s.Store == nil {
		return "", ErrNoDatabase
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	u, err := entity.NewUser(in.Name, in.Email, hash)
	if err != nil {
		return "", err
	}
	id, err := s.Store.CreateDocument(ctx, entity.UserCollection, u.ToDocument())
	if err != nil {
		return "", err
	}
	count("signups")

	enqueue(ctx, s.Jobs, s.Logger, meta, mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data:     tpl.NewWelcomeData(s.AppName, u.Name, u.Email, meta.options()...),
	})
	return id, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.Store == nil {
		return nil, ErrNoDatabase
	}
	docs, err := s.Store.GetDocuments(ctx, entity.UserCollection, repo.Filter{"email": email}, 1)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	u, err := entity.UserFromDocument(docs[0])
	if err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		count("login_failures")
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sub := helpers.Subject{UserID: u.ID, Name: u.Name, Email: u.Email, SessionID: uuid.NewString()}
	pair, err := s.generate(sub)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sub.SessionID,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *AuthService) generate(sub helpers.Subject) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(sub)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(sub)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	count("logins")
	return u, pair, nil
}

// Refresh rotates the session id and both tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, helpers.Subject, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, helpers.Subject{}, ErrInvalidCredentials
	}
	u, err := s.findByEmail(ctx, claims.Email)
	if err != nil {
		return TokenPair{}, helpers.Subject{}, err
	}
	if u == nil || u.ID != claims.UserID {
		return TokenPair{}, helpers.Subject{}, ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, SessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, helpers.Subject{}, ErrSessionExpired
		}
	}

	sub := helpers.Subject{UserID: u.ID, Name: u.Name, Email: u.Email, SessionID: uuid.NewString()}
	pair, err := s.generate(sub)
	if err != nil {
		return TokenPair{}, helpers.Subject{}, err
	}
	if s.Redis != nil {
		key := SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sub.SessionID,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, sub, nil
}

// Logout drops the user's Redis session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil || userID == "" {
		return nil
	}
	return s.Redis.Del(ctx, SessionKey(userID)).Err()
}
