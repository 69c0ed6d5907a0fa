package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found or expired")

const (
	accessTokenKey       = "access_token:%s:%s"
	refreshTokenKey      = "refresh_token:%s:%s"
	emailVerificationKey = "email_verification:%s"
	oauthStateKey        = "oauth_state:%s"
)

// TokenStore tracks issued JWTs and one-time tokens in redis. A JWT is only
// honoured while its key exists.
type TokenStore interface {
	StoreAccessToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	AccessTokenExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	// ConsumeRefreshToken deletes the refresh token and fails with ErrTokenNotFound if it was already gone.
	ConsumeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	RevokeTokens(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error

	SaveEmailVerificationToken(ctx context.Context, token string, identityID uuid.UUID, ttl time.Duration) error
	ConsumeEmailVerificationToken(ctx context.Context, token string) (uuid.UUID, error)
	SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeOAuthState(ctx context.Context, state string) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) StoreAccessToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, fmt.Sprintf(accessTokenKey, userID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, fmt.Sprintf(refreshTokenKey, userID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) AccessTokenExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, fmt.Sprintf(accessTokenKey, userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) ConsumeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	n, err := s.client.Del(ctx, fmt.Sprintf(refreshTokenKey, userID, tokenID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (s *redisTokenStore) RevokeTokens(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	keys := []string{fmt.Sprintf(accessTokenKey, userID, accessTokenID)}
	if refreshTokenID != "" {
		keys = append(keys, fmt.Sprintf(refreshTokenKey, userID, refreshTokenID))
	}
	return s.client.Del(ctx, keys...).Err()
}

// RevokeAll deletes every access and refresh token of the user.
func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range []string{
		fmt.Sprintf(accessTokenKey, userID, "*"),
		fmt.Sprintf(refreshTokenKey, userID, "*"),
	} {
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *redisTokenStore) SaveEmailVerificationToken(ctx context.Context, token string, identityID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, fmt.Sprintf(emailVerificationKey, token), identityID.String(), ttl).Err()
}

func (s *redisTokenStore) ConsumeEmailVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	raw, err := s.client.GetDel(ctx, fmt.Sprintf(emailVerificationKey, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrTokenNotFound
	}
	return id, nil
}

func (s *redisTokenStore) SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.Set(ctx, fmt.Sprintf(oauthStateKey, state), "1", ttl).Err()
}

func (s *redisTokenStore) ConsumeOAuthState(ctx context.Context, state string) error {
	n, err := s.client.Del(ctx, fmt.Sprintf(oauthStateKey, state)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	return nil
}
