// Package redis stores registrations in Redis. Each registration is a hash
// keyed by email, and a sorted set indexes emails by registration time.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikolay-ai/hackevent/internal/domain"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "hackevent:"

// createScript inserts a registration only if its email key is absent.
// KEYS: registration hash, time index, id counter.
// ARGV: email, name, organization, registered_at, score.
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
local id = redis.call('INCR', KEYS[3])
redis.call('HSET', KEYS[1], 'id', id, 'email', ARGV[1], 'name', ARGV[2], 'organization', ARGV[3], 'registered_at', ARGV[4])
redis.call('ZADD', KEYS[2], ARGV[5], ARGV[1])
return id
`)

// Store wraps the go-redis client and implements both domain.Database and
// domain.RegistrationRepository.
type Store struct {
	client *redis.Client
	prefix string
}

// New parses url, connects, and verifies the server answers.
func New(ctx context.Context, url, prefix string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewWithClient(client, prefix), nil
}

// NewWithClient builds a Store around an existing client.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) registrationKey(email string) string { return s.prefix + "registration:" + email }
func (s *Store) indexKey() string                    { return s.prefix + "registrations:by_time" }
func (s *Store) counterKey() string                  { return s.prefix + "registrations:next_id" }

// Migrate is a no-op; Redis needs no schema.
func (s *Store) Migrate(ctx context.Context) error { return nil }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Registrations returns the store itself, which is also the repository.
func (s *Store) Registrations() *Store { return s }

func (s *Store) Create(ctx context.Context, reg *domain.Registration) error {
	at := reg.RegisteredAt.UTC()
	id, err := createScript.Run(ctx, s.client,
		[]string{s.registrationKey(reg.Email), s.indexKey(), s.counterKey()},
		reg.Email, reg.Name, reg.Organization, at.Format(time.RFC3339Nano), at.UnixMicro(),
	).Int64()
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	if id == 0 {
		return domain.ErrDuplicateEmail
	}

	reg.ID = id
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.Registration, error) {
	emails, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(emails))
	for i, email := range emails {
		cmds[i] = pipe.HGetAll(ctx, s.registrationKey(email))
	}
	if len(emails) > 0 {
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("load registrations: %w", err)
		}
	}

	regs := make([]domain.Registration, 0, len(emails))
	for _, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("load registration: %w", err)
		}
		if len(fields) == 0 {
			continue
		}
		reg, err := decode(fields)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	// The sorted set breaks score ties by member; restore id order.
	sort.SliceStable(regs, func(i, j int) bool {
		if !regs[i].RegisteredAt.Equal(regs[j].RegisteredAt) {
			return regs[i].RegisteredAt.After(regs[j].RegisteredAt)
		}
		return regs[i].ID > regs[j].ID
	})
	return regs, nil
}

func decode(fields map[string]string) (domain.Registration, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("decode registration id: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, fields["registered_at"])
	if err != nil {
		return domain.Registration{}, fmt.Errorf("decode registered_at: %w", err)
	}
	return domain.Registration{
		ID:           id,
		Email:        fields["email"],
		Name:         fields["name"],
		Organization: fields["organization"],
		RegisteredAt: at,
	}, nil
}
