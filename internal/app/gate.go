// internal/app/gate.go
package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"
	"golang.org/x/crypto/bcrypt"
)

// SecretSource yields the current admin secret, plain or bcrypt-hashed.
type SecretSource interface {
	Secret(ctx context.Context) (string, error)
}

type StaticSecret string

func (s StaticSecret) Secret(context.Context) (string, error) {
	return string(s), nil
}

// RedisSecret reads the secret from the "secret" field of a redis hash on every check.
type RedisSecret struct {
	redis *redis.Client
	key   string
}

func NewRedisSecret(ctx context.Context, url, key string) (*RedisSecret, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisSecret{redis: client, key: key}, nil
}

func (r *RedisSecret) Secret(ctx context.Context) (string, error) {
	secret, err := r.redis.HGet(ctx, r.key, "secret").Result()
	if err == redis.Nil {
		logger.Debug.Printf("Admin secret not found for key: %s", r.key)
		return "", fmt.Errorf("admin secret not set in %s", r.key)
	}
	if err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	return secret, nil
}

func (r *RedisSecret) Close() error {
	return r.redis.Close()
}

// Gate compares user input against a shared secret. There is no lockout
// and no rate limiting.
type Gate struct {
	source SecretSource
}

func NewGate(source SecretSource) *Gate {
	return &Gate{source: source}
}

func NewGateFromConfig(ctx context.Context, config *Config) (*Gate, error) {
	switch config.Admin.Source {
	case SecretSourceRedis:
		src, err := NewRedisSecret(ctx, config.Admin.RedisURL, config.Admin.SecretKey)
		if err != nil {
			return nil, err
		}
		return NewGate(src), nil
	default:
		if config.Admin.Password == defaultPassword {
			logger.Info.Println("Admin gate uses the default password, set [admin] password")
		}
		return NewGate(StaticSecret(config.Admin.Password)), nil
	}
}

func (g *Gate) Check(ctx context.Context, input string) error {
	secret, err := g.source.Secret(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin secret: %w", err)
	}

	if !matchSecret(secret, input) {
		return ErrAccessDenied
	}
	return nil
}

func (g *Gate) Close() error {
	if c, ok := g.source.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func matchSecret(secret, input string) bool {
	if isBcryptHash(secret) {
		err := bcrypt.CompareHashAndPassword([]byte(secret), []byte(input))
		if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Error.Printf("Bad admin password hash: %v", err)
		}
		return err == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(input)) == 1
}
