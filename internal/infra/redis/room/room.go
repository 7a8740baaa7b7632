package infra_redis_room

import (
	"context"
	"time"

	"github.com/go-redis/redis"
)

// Driver is a thin keyed byte store over one Redis document per room.
// Keys are built as "<prefix>:<room id>".
type Driver struct {
	client *redis.Client
	prefix string
}

func New(
	client *redis.Client,
	prefix string,
) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
	}
}

// Get returns the stored document and whether the key exists. An
// expired or never-written key is reported as absent, not as an error.
func (d *Driver) Get(ctx context.Context, key string) ([]byte, bool, error) {
	fullKey := d.getFullKey(key)

	data, err := d.client.WithContext(ctx).Get(fullKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	return data, true, nil
}

// Set writes the document and applies ttl, refreshing the key's
// lifetime on every call.
func (d *Driver) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	fullKey := d.getFullKey(key)
	if err := d.client.WithContext(ctx).Set(fullKey, value, ttl).Err(); err != nil {
		return err
	}

	return nil
}

func (d *Driver) Ping() error {
	return d.client.Ping().Err()
}

func (d *Driver) getFullKey(key string) string {
	if d.prefix != "" {
		return d.prefix + ":" + key
	}
	return key
}
