package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-blog/internal/common"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// AccountCacheRepository caches public account records in Redis
type AccountCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached accounts
}

// NewAccountCacheRepository creates a new repository instance with the given TTL
func NewAccountCacheRepository(client *redis.Client, expiration time.Duration) *AccountCacheRepository {
	return &AccountCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func accountKey(id uuid.UUID) string {
	return fmt.Sprintf("account:%s", id)
}

// Get returns the cached account or common.ErrNotFound on a miss.
func (r *AccountCacheRepository) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	key := accountKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.FromContext(ctx).Debugw("cache get", "key", key, "hit", false, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	var account models.Account
	if err := json.Unmarshal(val, &account); err != nil {
		logger.FromContext(ctx).Warnw("cache entry is corrupt", "key", key, "error", err)
		return nil, err
	}

	logger.FromContext(ctx).Debugw("cache get", "key", key, "hit", true)
	return &account, nil
}

// Set caches the account with the configured expiration
func (r *AccountCacheRepository) Set(ctx context.Context, account *models.Account) error {
	key := accountKey(account.ID)

	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()
	logger.FromContext(ctx).Debugw("cache set", "key", key, "ttl", r.exp, "error", err)
	return err
}
