package kvstore

import (
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned by Get/HGet when the key or field is absent.
var ErrNotFound = redis.Nil

type KVStore interface {
	Get(key string) (string, error)
	Set(key string, value interface{}) error
	SetEx(key string, value interface{}, ttl time.Duration) error
	SetNX(key string, value interface{}, ttl time.Duration) (bool, error)
	Delete(key string) error
	LPush(key string, values ...interface{}) error
	RPush(key string, values ...interface{}) error
	LRange(key string, start, stop int64) ([]string, error)
	LRem(key string, count int64, value interface{}) error
	HSet(key, field string, value interface{}) error
	HGet(key, field string) (string, error)
	HGetAll(key string) (map[string]string, error)
	HDel(key string, fields ...string) error
	Keys(pattern string) ([]string, error)
}
