package helpers

import "github.com/redis/go-redis/v9"

// NewRedisClient initializes a redis client. The cache is an optional
// collaborator: callers must tolerate a nil client and redis errors.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
