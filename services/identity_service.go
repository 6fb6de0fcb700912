// services/identity_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ClientRef is the remembered identity of a returning client.
type ClientRef struct {
	ClientID uuid.UUID `json:"clientId"`
	Email    string    `json:"email"`
}

// IdentityCache remembers which client a booking session belongs to, so a
// returning client can skip the pick-or-create step. Entries expire after a
// TTL and can be invalidated explicitly.
type IdentityCache interface {
	Remember(ctx context.Context, sessionKey string, ref ClientRef) error
	Lookup(ctx context.Context, sessionKey string) (*ClientRef, error)
	Forget(ctx context.Context, sessionKey string) error
}

const identityKeyPrefix = "identity:client:"

// RedisIdentityCache stores remembered identities in Redis so they survive
// process restarts.
type RedisIdentityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdentityCache(rdb *redis.Client) *RedisIdentityCache {
	ttlHours := 720 // 30 days default
	if env := os.Getenv("IDENTITY_CACHE_TTL_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil && h > 0 {
			ttlHours = h
		}
	}
	return &RedisIdentityCache{
		rdb: rdb,
		ttl: time.Duration(ttlHours) * time.Hour,
	}
}

func (c *RedisIdentityCache) Remember(ctx context.Context, sessionKey string, ref ClientRef) error {
	payload, err := json.Marshal(ref)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, identityKeyPrefix+sessionKey, payload, c.ttl).Err()
}

func (c *RedisIdentityCache) Lookup(ctx context.Context, sessionKey string) (*ClientRef, error) {
	payload, err := c.rdb.Get(ctx, identityKeyPrefix+sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: no remembered client", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var ref ClientRef
	if err := json.Unmarshal(payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *RedisIdentityCache) Forget(ctx context.Context, sessionKey string) error {
	return c.rdb.Del(ctx, identityKeyPrefix+sessionKey).Err()
}

type IdentityResolver struct {
	db    *gorm.DB
	cache IdentityCache
}

// NewIdentityResolver builds a resolver; cache may be nil, in which case the
// cached-identity path and remember-me are disabled.
func NewIdentityResolver(db *gorm.DB, cache IdentityCache) *IdentityResolver {
	return &IdentityResolver{db: db, cache: cache}
}

type NewClientInput struct {
	Name    string
	Email   string
	Contact string
	Phone   string
}

// ResolveInput carries exactly one identity path: an explicit existing client
// id, a new client to create, or a session key whose remembered identity is
// reused verbatim.
type ResolveInput struct {
	SalonID    uuid.UUID
	ClientID   *uuid.UUID
	New        *NewClientInput
	SessionKey string
	RememberMe bool
}

// Resolve returns the concrete client a booking is for.
func (r *IdentityResolver) Resolve(ctx context.Context, input ResolveInput) (*models.Client, error) {
	var client *models.Client
	var err error

	switch {
	case input.ClientID != nil:
		client, err = r.findByID(input.SalonID, *input.ClientID)
	case input.New != nil:
		client, err = r.createClient(input.SalonID, *input.New)
	case input.SessionKey != "":
		client, err = r.fromCache(ctx, input.SalonID, input.SessionKey)
	default:
		return nil, fmt.Errorf("%w: no client identity supplied", ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	if input.RememberMe && input.SessionKey != "" && r.cache != nil {
		ref := ClientRef{ClientID: client.ID, Email: client.Email}
		if cerr := r.cache.Remember(ctx, input.SessionKey, ref); cerr != nil {
			// The booking still has a resolved client; losing the cache
			// entry only costs the skip-login shortcut next time.
			log.Printf("Failed to remember client %s: %v", client.ID, cerr)
		}
	}

	return client, nil
}

// Forget drops the remembered identity for a session.
func (r *IdentityResolver) Forget(ctx context.Context, sessionKey string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Forget(ctx, sessionKey)
}

func (r *IdentityResolver) findByID(salonID, clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("salon_id = ? AND id = ?", salonID, clientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %s", ErrNotFound, clientID)
		}
		return nil, err
	}
	return &client, nil
}

func (r *IdentityResolver) createClient(salonID uuid.UUID, input NewClientInput) (*models.Client, error) {
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if !utils.ValidateEmail(input.Email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}

	var existing models.Client
	err := r.db.Where("salon_id = ? AND email = ?", salonID, input.Email).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, input.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client := models.Client{
		SalonID: salonID,
		Name:    input.Name,
		Email:   input.Email,
		Contact: input.Contact,
		Phone:   input.Phone,
	}
	if err := r.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *IdentityResolver) fromCache(ctx context.Context, salonID uuid.UUID, sessionKey string) (*models.Client, error) {
	if r.cache == nil {
		return nil, fmt.Errorf("%w: identity cache not available", ErrNotFound)
	}
	ref, err := r.cache.Lookup(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	return r.findByID(salonID, ref.ClientID)
}

// DisplayLabel is the label shown for a client in selection lists.
func DisplayLabel(client *models.Client) string {
	return fmt.Sprintf("%s (%s)", client.Name, client.Email)
}
