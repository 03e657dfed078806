package service

import (
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/usecase"
)

var tracer = otel.Tracer("auth")

const tokenKeyPrefix = "auth:token:"

// TokenService verifies credentials and manages bearer tokens in redis.
// Tokens expire through redis TTL; no sweep is needed.
type TokenService struct {
	repo usecase.AuthRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewTokenService(repo usecase.AuthRepository, rdb *redis.Client, ttl time.Duration) *TokenService {
	return &TokenService{
		repo: repo,
		rdb:  rdb,
		ttl:  ttl,
	}
}

type AuthResult struct {
	UserID   uuid.UUID
	Username string
}

func (s *TokenService) Login(ctx context.Context, username, password string) (string, *AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	user, hash, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		span.RecordError(errors.Wrap(err, "TokenService.Login: user lookup failed"))
		return "", nil, domain.ValidationError{Reason: "invalid username or password"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		span.RecordError(err)
		return "", nil, domain.ValidationError{Reason: "invalid username or password"}
	}

	token := uuid.NewString()
	if err := s.rdb.Set(ctx, tokenKeyPrefix+token, user.ID.String(), s.ttl).Err(); err != nil {
		span.RecordError(err)
		return "", nil, errors.Wrap(err, "storing session token")
	}

	return token, &AuthResult{UserID: user.ID, Username: user.Username}, nil
}

func (s *TokenService) Verify(ctx context.Context, token string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Verify")
	defer span.End()

	val, err := s.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("unknown or expired token")
	}
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "reading session token")
	}

	id, err := uuid.Parse(val)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "corrupt session token value")
	}

	return &AuthResult{UserID: id}, nil
}

func (s *TokenService) Logout(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, tokenKeyPrefix+token).Err()
}
